package apis

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// Validation errors carry the enumerated reason codes the write endpoints
// return before any store or remote call is attempted.
var (
	ErrValidation    apperrors.Error = apperrors.New("error-validation").SetStatusCode(http.StatusBadRequest)
	ErrInvalidRating apperrors.Error = ErrValidation.New("error-invalid-rating")
	ErrEmptyUserID   apperrors.Error = ErrValidation.New("error-empty-userid")
	ErrEmptyModelID  apperrors.Error = ErrValidation.New("error-empty-modelid")
	ErrEmptySearch   apperrors.Error = ErrValidation.New("error-empty-search")
	ErrInvalidRepo   apperrors.Error = ErrValidation.New("error-invalid-repo_url")
)
