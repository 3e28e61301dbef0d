package auth

import "context"

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=auth_test

// Store holds admin identities. Lookups match the (normalized) email exactly.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	Add(ctx context.Context, admin Admin) (*Admin, error)
}
