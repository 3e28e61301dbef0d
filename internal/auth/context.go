package auth

import "context"

type adminCtxKey struct{}

func NewContextWithAdmin(ctx context.Context, admin *Admin) context.Context {
	return context.WithValue(ctx, adminCtxKey{}, admin)
}

func AdminFromContext(ctx context.Context) (*Admin, bool) {
	admin, ok := ctx.Value(adminCtxKey{}).(*Admin)
	return admin, ok && admin != nil
}
