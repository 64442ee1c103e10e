package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

type verifiedBody struct {
	UserID *string `json:"userid"`
	JWS    *string `json:"jws"`
}

// Middleware rejects requests whose JSON body lacks userid or jws (400),
// or whose JWS fails verification against the claimed user id (401 on
// mismatch, 500 when verification cannot be performed). The body is left
// readable for the wrapped handler.
func Middleware(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var raw []byte
			if r.Body != nil {
				var err error
				raw, err = io.ReadAll(r.Body)
				if err != nil {
					httpx.SendError(ctx, w, http.StatusBadRequest, "error-reading-request")
					return
				}
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))

			var body verifiedBody
			// a malformed body is indistinguishable from a missing userid
			_ = json.Unmarshal(raw, &body)
			if body.UserID == nil || *body.UserID == "" {
				httpx.SendError(ctx, w, http.StatusBadRequest, ErrEmptyUserID.Error())
				return
			}
			if body.JWS == nil || *body.JWS == "" {
				httpx.SendError(ctx, w, http.StatusBadRequest, ErrEmptyJWS.Error())
				return
			}

			if err := v.Verify(ctx, *body.UserID, *body.JWS); err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, ErrJWSMismatch) {
					status = http.StatusUnauthorized
				}
				httpx.SendError(ctx, w, status, err.ErrorAll())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
