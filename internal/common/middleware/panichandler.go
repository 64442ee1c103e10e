package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Ctx(r.Context()).Error().Msgf("panic handling request: %v", err)
				httpx.SendError(r.Context(), w, http.StatusInternalServerError, "error-internal")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
