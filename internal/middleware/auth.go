package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"

	"github.com/semearlages/semearapi/internal/auth"
	"github.com/semearlages/semearapi/internal/telemetry/tracing"
	"github.com/semearlages/semearapi/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type authenticator interface {
	Authenticate(ctx context.Context, cookieToken, bearerToken string) (*auth.Admin, error)
}

type AuthMiddlewareHandler struct {
	authenticator authenticator
}

func NewAuthMiddlewareHandler(authenticator authenticator) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		authenticator: authenticator,
	}
}

// RequireAdmin lets the request through only for an authenticated admin, which is
// then available via auth.AdminFromContext. All auth failures get the same 401,
// a failing credential store gets a 500.
func (h *AuthMiddlewareHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
		defer span.End()

		admin, err := h.authenticator.Authenticate(ctx, CookieToken(r), BearerToken(r))
		if err != nil && !errors.Is(err, auth.ErrUnauthenticated) {
			log.Errorf("[auth middleware] authenticate %s: %s", r.URL.Path, err)
			span.SetStatus(codes.Error, "authenticate failed")
			pkg.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if err != nil {
			log.Tracef("[auth middleware] unauthorized => %s: %s", r.URL.Path, err)
			span.SetStatus(codes.Error, "unauthenticated")
			WriteUnauthorized(w)
			return
		}

		span.SetStatus(codes.Ok, "ok")
		next.ServeHTTP(w, r.WithContext(auth.NewContextWithAdmin(r.Context(), admin)))
	})
}

func WriteUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	pkg.WriteJSONError(w, http.StatusUnauthorized, auth.ErrUnauthenticated.Error())
}

func CookieToken(r *http.Request) string {
	cookie, err := r.Cookie(auth.AccessTokenCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
