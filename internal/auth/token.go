package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 signed tokens carrying the admin email as subject.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret:  secret,
		ttl:     ttl,
		NowFunc: time.Now,
	}
}

func (ts *TokenService) TTL() time.Duration {
	return ts.ttl
}

func (ts *TokenService) Issue(subject string) (string, time.Time, error) {
	return ts.IssueWithTTL(subject, ts.ttl)
}

func (ts *TokenService) IssueWithTTL(subject string, ttl time.Duration) (string, time.Time, error) {
	if len(ts.secret) == 0 {
		return "", time.Time{}, errors.New("token secret not set")
	}

	now := ts.NowFunc()
	expiresAt := now.Add(ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	// the exp claim has second precision
	return token, expiresAt.Truncate(time.Second), nil
}

// Verify returns the claims of a valid, unexpired HS256 token signed with the current secret.
// Any failure yields (nil, false).
func (ts *TokenService) Verify(token string) (*Claims, bool) {
	if token == "" || len(ts.secret) == 0 {
		return nil, false
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (any, error) {
			return ts.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(ts.NowFunc),
	)
	if err != nil || !parsed.Valid {
		return nil, false
	}

	return claims, true
}
