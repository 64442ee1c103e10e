package dberror

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

var (
	ErrDatabase      apperrors.Error = apperrors.New("error-db").SetStatusCode(http.StatusInternalServerError)
	ErrNotFound      apperrors.Error = ErrDatabase.New("error-not-found").SetStatusCode(http.StatusNotFound)
	ErrAlreadyExists apperrors.Error = ErrDatabase.New("error-already-exists").SetStatusCode(http.StatusConflict)
	ErrInvalidInput  apperrors.Error = ErrDatabase.New("error-invalid-input").SetStatusCode(http.StatusBadRequest)
)
