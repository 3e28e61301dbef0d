package middleware

import (
	"net/http"
	"runtime/debug"

	log "github.com/sirupsen/logrus"

	"github.com/semearlages/semearapi/internal/telemetry/metrics"
	"github.com/semearlages/semearapi/pkg"
)

func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			resp := newResponseWriter(respWriter)
			defer func() {
				if r := recover(); r != nil {
					if r == http.ErrAbortHandler {
						panic(r)
					}
					log.Errorf("http: panic serving %s: %v\n%s", req.URL.Path, r, debug.Stack())
					if metricsManager != nil {
						metricsManager.CounterHandleRequestPanic.Inc()
					}
					if !resp.wroteHeader {
						pkg.WriteJSONError(resp, http.StatusInternalServerError, "internal server error")
					}
				}
			}()

			// handler call
			next.ServeHTTP(resp, req)
		})
	}
}
