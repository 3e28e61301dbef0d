package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const RequestIDHeader = "X-Request-Id"

type requestIDCtxKey struct{}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDCtxKey{}).(string)
	return id
}

// LogRequest tags every request with an id, echoed back in X-Request-Id, and logs its outcome.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := uuid.NewString()
			w.Header().Set(RequestIDHeader, requestID)

			begin := time.Now()
			resp := newResponseWriter(w)
			next.ServeHTTP(resp, r.WithContext(context.WithValue(r.Context(), requestIDCtxKey{}, requestID)))

			entry := log.WithFields(log.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     resp.statusCode,
				"duration":   time.Since(begin).String(),
				"user_agent": r.UserAgent(),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warnln("request failed")
				return
			}
			entry.Debugln("request served")
		})
	}
}
