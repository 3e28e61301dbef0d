package auth

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/pkg"
)

type EnsureAdminParams struct {
	Email string
	// PasswordHash takes precedence over Password
	PasswordHash string
	Password     string
	HashCost     int
}

// EnsureAdmin creates the configured admin unless it exists already.
// It reports whether a new admin was created.
func EnsureAdmin(ctx context.Context, store Store, params EnsureAdminParams) (*Admin, bool, error) {
	email := NormalizeEmail(params.Email)
	if email == "" {
		return nil, false, errors.New("admin email not set")
	}

	existing, err := store.GetByEmail(ctx, email)
	if err == nil {
		log.Debugf("admin %s exists already", email)
		return existing, false, nil
	}
	if !errors.Is(err, ErrAdminNotFound) {
		return nil, false, fmt.Errorf("get admin: %w", err)
	}

	passwordHash := params.PasswordHash
	switch {
	case passwordHash != "":
		if pkg.HashCost(passwordHash) < 0 {
			return nil, false, errors.New("admin password hash is not a bcrypt hash")
		}
	case params.Password != "":
		passwordHash, err = pkg.HashPassword(params.Password, params.HashCost)
		if err != nil {
			return nil, false, fmt.Errorf("hash admin password: %w", err)
		}
	default:
		return nil, false, errors.New("neither admin password nor password hash set")
	}

	admin, err := store.Add(ctx, Admin{
		Email:        email,
		PasswordHash: passwordHash,
	})
	if errors.Is(err, ErrAdminExists) {
		// created concurrently by another instance
		admin, err = store.GetByEmail(ctx, email)
		if err != nil {
			return nil, false, fmt.Errorf("get admin: %w", err)
		}
		return admin, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("add admin: %w", err)
	}

	log.Infof("admin %s created", email)
	return admin, true, nil
}
