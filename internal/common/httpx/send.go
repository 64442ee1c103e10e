package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

var ErrUnableToParseRequest = apperrors.New("error-parsing-request").SetStatusCode(http.StatusBadRequest)

// SendJSON writes a success envelope. A nil data value is sent as an
// empty object rather than JSON null.
func SendJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	if data == nil {
		data = struct{}{}
	}
	writeEnvelope(ctx, w, statusCode, Envelope{
		Success: true,
		Reason:  "ok",
		Data:    data,
	})
}

// SendError writes a failure envelope with an empty data object.
func SendError(ctx context.Context, w http.ResponseWriter, statusCode int, reason string) {
	writeEnvelope(ctx, w, statusCode, Envelope{
		Success: false,
		Reason:  reason,
		Data:    struct{}{},
	})
}

func writeEnvelope(ctx context.Context, w http.ResponseWriter, statusCode int, env Envelope) {
	body, err := json.Marshal(env)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to marshal response envelope")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"reason":"error-encoding-response","data":{}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(body)
}
