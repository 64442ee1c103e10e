// Package httpx shapes every HTTP response into the service's uniform
// envelope: {"success": bool, "reason": string, "data": any}.
package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// Envelope is the wire shape of every response, success or failure.
type Envelope struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Data    any    `json:"data"`
}

// Response is what a RequestHandler returns on success. Data lands in the
// envelope's data field with reason "ok".
type Response struct {
	StatusCode int
	Data       any
}

type RequestHandler func(r *http.Request) (*Response, error)

// ResponseHandlerParam pairs a method and path with its handler, for
// table-driven route registration.
type ResponseHandlerParam struct {
	Method  string
	Path    string
	Handler RequestHandler
}

// WrapHandler adapts a RequestHandler into an http.HandlerFunc. Errors
// implementing apperrors.Error map to their status code with ErrorAll as
// the reason; anything else becomes a 500.
func WrapHandler(handler RequestHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			if appErr, ok := err.(apperrors.Error); ok {
				statusCode := appErr.StatusCode()
				if statusCode == 0 {
					statusCode = http.StatusInternalServerError
				}
				SendError(r.Context(), w, statusCode, appErr.ErrorAll())
			} else {
				SendError(r.Context(), w, http.StatusInternalServerError, err.Error())
			}
			return
		}
		if rsp == nil {
			SendError(r.Context(), w, http.StatusInternalServerError, "error-empty-response")
			return
		}
		statusCode := rsp.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusOK
		}
		SendJSON(r.Context(), w, statusCode, rsp.Data)
	}
}

// GetRequestData decodes a JSON request body into data.
func GetRequestData(r *http.Request, data any) error {
	if r.Body == nil {
		return ErrUnableToParseRequest
	}
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		log.Ctx(r.Context()).Debug().Err(err).Msg("unable to decode request body")
		return ErrUnableToParseRequest
	}
	return nil
}
