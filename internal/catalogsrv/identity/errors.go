package identity

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

var (
	ErrIdentity apperrors.Error = apperrors.New("error-identity").SetStatusCode(http.StatusInternalServerError)
	// ErrJWSMismatch: the signature does not prove control of the claimed DID.
	ErrJWSMismatch apperrors.Error = ErrIdentity.New("error-jws-mismatch").SetStatusCode(http.StatusUnauthorized)
	// ErrVerification: the verification itself could not be performed.
	ErrVerification apperrors.Error = ErrIdentity.New("error-performing-jws-verification").SetStatusCode(http.StatusInternalServerError)
	ErrEmptyUserID  apperrors.Error = ErrIdentity.New("error-empty-userid").SetStatusCode(http.StatusBadRequest)
	ErrEmptyJWS     apperrors.Error = ErrIdentity.New("error-empty-jws").SetStatusCode(http.StatusBadRequest)
)
