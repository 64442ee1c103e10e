package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

type stubVerifier struct {
	err apperrors.Error
}

func (s *stubVerifier) Verify(ctx context.Context, did, signed string) apperrors.Error {
	return s.err
}

func runMiddleware(t *testing.T, v Verifier, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		// the body must still be readable downstream
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, body, string(raw))
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/rate", strings.NewReader(body))
	rr := httptest.NewRecorder()
	Middleware(v)(next).ServeHTTP(rr, req)
	return rr, handlerCalled
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	return env
}

func TestMiddlewareMissingUserID(t *testing.T) {
	rr, called := runMiddleware(t, &stubVerifier{}, `{"jws":"eyJ..."}`)
	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "error-empty-userid", decodeEnvelope(t, rr).Reason)
}

func TestMiddlewareMissingJWS(t *testing.T) {
	rr, called := runMiddleware(t, &stubVerifier{}, `{"userid":"did:3:kjz123"}`)
	assert.False(t, called)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "error-empty-jws", decodeEnvelope(t, rr).Reason)
}

func TestMiddlewareMismatch(t *testing.T) {
	rr, called := runMiddleware(t, &stubVerifier{err: ErrJWSMismatch}, `{"userid":"did:3:kjz123","jws":"eyJ..."}`)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "error-jws-mismatch", decodeEnvelope(t, rr).Reason)
}

func TestMiddlewareVerificationFailure(t *testing.T) {
	verr := ErrVerification.Err(assert.AnError)
	rr, called := runMiddleware(t, &stubVerifier{err: verr}, `{"userid":"did:3:kjz123","jws":"eyJ..."}`)
	assert.False(t, called)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decodeEnvelope(t, rr).Reason, "error-performing-jws-verification")
}

func TestMiddlewarePassesVerifiedRequest(t *testing.T) {
	rr, called := runMiddleware(t, &stubVerifier{}, `{"userid":"did:3:kjz123","jws":"eyJ...","rating":10}`)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rr.Code)
}
