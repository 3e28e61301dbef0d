package middleware

import (
	"net/http"

	"github.com/semearlages/semearapi/internal/ratelimit"
	"github.com/semearlages/semearapi/internal/telemetry/metrics"
	"github.com/semearlages/semearapi/pkg"
)

// RouteGuard wraps route handlers with their own rate limit rule and, for
// admin routes, the admin check. The rate limit always runs first.
type RouteGuard struct {
	rateLimiter    RequestRateLimiter
	rules          ratelimit.Rules
	proxies        *pkg.TrustedProxies
	authMiddleware *AuthMiddlewareHandler
	metricsManager *metrics.Manager
}

type NewRouteGuardParams struct {
	RateLimiter    RequestRateLimiter
	Rules          ratelimit.Rules
	TrustedProxies *pkg.TrustedProxies
	AuthMiddleware *AuthMiddlewareHandler
	MetricsManager *metrics.Manager
}

func NewRouteGuard(params NewRouteGuardParams) *RouteGuard {
	return &RouteGuard{
		rateLimiter:    params.RateLimiter,
		rules:          params.Rules,
		proxies:        params.TrustedProxies,
		authMiddleware: params.AuthMiddleware,
		metricsManager: params.MetricsManager,
	}
}

func (g *RouteGuard) Public(ruleName string, handler http.HandlerFunc) http.Handler {
	return RateLimit(g.rateLimiter, g.rules.Get(ruleName), g.proxies, g.metricsManager)(handler)
}

func (g *RouteGuard) Admin(ruleName string, handler http.HandlerFunc) http.Handler {
	return RateLimit(g.rateLimiter, g.rules.Get(ruleName), g.proxies, g.metricsManager)(
		g.authMiddleware.RequireAdmin(handler),
	)
}
