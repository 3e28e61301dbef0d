package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/semearlages/semearapi/internal/telemetry/tracing"
	"github.com/semearlages/semearapi/pkg"
)

var _ Store = (*Repo)(nil)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*Admin, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authRepo.getByEmail")
	defer span.End()

	var admin Admin
	err := r.db.QueryRow(
		ctx,
		`SELECT id, email, password_hash FROM admin_users WHERE email = $1`,
		email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("get admin by email: %w", err)
	}

	span.SetAttributes(attribute.Int("admin.id", admin.ID))
	return &admin, nil
}

func (r *Repo) Add(ctx context.Context, admin Admin) (*Admin, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "authRepo.add")
	defer span.End()

	admin.Email = NormalizeEmail(admin.Email)
	err := r.db.QueryRow(
		ctx,
		`INSERT INTO admin_users (email, password_hash) VALUES ($1, $2) RETURNING id`,
		admin.Email, admin.PasswordHash,
	).Scan(&admin.ID)
	if pkg.IsUniqueViolationError(err) {
		return nil, ErrAdminExists
	}
	if err != nil {
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	return &admin, nil
}
