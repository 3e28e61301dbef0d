package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/internal/ratelimit"
	"github.com/semearlages/semearapi/internal/telemetry/metrics"
	"github.com/semearlages/semearapi/pkg"
)

type RequestRateLimiter interface {
	Take(clientID string, rule ratelimit.Rule) ratelimit.Decision
}

// RateLimit admits requests under rule, per client address. Rejections get a 429
// with Retry-After and are counted per rule.
func RateLimit(
	rateLimiter RequestRateLimiter,
	rule ratelimit.Rule,
	proxies *pkg.TrustedProxies,
	metricsManager *metrics.Manager,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := pkg.ClientIP(r, proxies)
			decision := rateLimiter.Take(clientID, rule)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rule.MaxRequests))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

			if decision.Allowed {
				next.ServeHTTP(w, r)
				return
			}

			log.Debugf("rate limit [%s] exceeded by %s", rule.Name, clientID)
			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.WithLabelValues(rule.Name).Inc()
			}

			w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds(decision.ResetAfter)))
			pkg.WriteJSONError(
				w,
				http.StatusTooManyRequests,
				"rate limit exceeded: "+strconv.Itoa(rule.MaxRequests)+" per "+rule.Window.String(),
			)
		})
	}
}

func retryAfterSeconds(d time.Duration) int {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
