package auth

import (
	"errors"
	"strings"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrAdminExists        = errors.New("admin exists already")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

type Admin struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

// NormalizeEmail is applied to emails before they are stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AccessTokenCookie carries the token issued on login.
const AccessTokenCookie = "access_token"
