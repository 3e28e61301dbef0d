package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/semearlages/semearapi/internal/telemetry/tracing"
	"github.com/semearlages/semearapi/pkg"
)

type LoginResult struct {
	Admin     *Admin
	Token     string
	ExpiresAt time.Time
}

type Service struct {
	store  Store
	tokens *TokenService
	// checked when the email is unknown, so both failure paths cost one bcrypt comparison
	dummyHash string
}

func NewService(store Store, tokens *TokenService, hashCost int) *Service {
	dummyPassword, err := pkg.GenerateRandomString(24)
	if err != nil {
		log.Errorf("auth service: generate dummy password: %s", err)
	}
	dummyHash, err := pkg.HashPassword(dummyPassword, hashCost)
	if err != nil {
		log.Errorf("auth service: hash dummy password: %s", err)
	}

	return &Service{
		store:     store,
		tokens:    tokens,
		dummyHash: dummyHash,
	}
}

func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// Login verifies the credentials and issues a token for the admin.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (_ *LoginResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.login")
	defer func() {
		if !errors.Is(err, ErrInvalidCredentials) && !errors.Is(err, ErrMissingCredentials) {
			tracing.RecordError(span, err)
		}
		span.End()
	}()

	email = NormalizeEmail(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, ErrMissingCredentials
	}

	admin, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrAdminNotFound) {
		pkg.CheckPasswordHash(password, s.dummyHash)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("get admin: %w", err)
	}

	if !pkg.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(admin.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	span.SetAttributes(attribute.Int("admin.id", admin.ID))

	return &LoginResult{
		Admin:     admin,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate resolves the admin behind a request token. The cookie token wins,
// the bearer token is only looked at when there is no cookie token.
// Token and identity failures are ErrUnauthenticated; storage errors are returned wrapped.
func (s *Service) Authenticate(ctx context.Context, cookieToken, bearerToken string) (*Admin, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authService.authenticate")
	defer span.End()

	token := cookieToken
	if token == "" {
		token = bearerToken
	}
	if token == "" {
		return nil, ErrUnauthenticated
	}

	claims, ok := s.tokens.Verify(token)
	if !ok || claims.Subject == "" {
		return nil, ErrUnauthenticated
	}

	admin, err := s.store.GetByEmail(ctx, claims.Subject)
	if errors.Is(err, ErrAdminNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("get admin: %w", err)
	}

	return admin, nil
}
