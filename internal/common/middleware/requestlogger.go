package middleware

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestLogger assigns each request a UUID, attaches a sub-logger with
// the request id to the context, and logs the request line.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx := log.With().Str("request_id", requestID).Logger().WithContext(r.Context())
		w.Header().Set("X-Request-ID", requestID)

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		log.Ctx(ctx).Info().
			Str("requestURL", fmt.Sprintf("%s://%s%s", scheme, r.Host, r.RequestURI)).
			Str("requestMethod", r.Method).
			Str("remoteIP", r.RemoteAddr).
			Msg("")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
