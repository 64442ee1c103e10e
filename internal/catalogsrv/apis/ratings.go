package apis

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

func (a *API) getModelRatings(r *http.Request) (*httpx.Response, error) {
	result, err := a.store.GetRatings(r.Context())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

func (a *API) getUserRatings(r *http.Request) (*httpx.Response, error) {
	userID := r.URL.Query().Get("userid")
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	result, err := a.store.GetUserRatings(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

type ratePayload struct {
	UserID  string `json:"userid" validate:"required"`
	ModelID string `json:"modelid" validate:"required"`
	Rating  *int   `json:"rating" validate:"required"`
	Comment string `json:"comment"`
}

func (a *API) postRate(r *http.Request) (*httpx.Response, error) {
	var payload ratePayload
	if err := httpx.GetRequestData(r, &payload); err != nil {
		return nil, err
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}
	// a rating is a thumb: down is 0, up is 10, nothing in between
	if *payload.Rating != 0 && *payload.Rating != 10 {
		return nil, ErrInvalidRating
	}

	rating := models.Rating{
		UserID:  payload.UserID,
		ModelID: payload.ModelID,
		Rating:  *payload.Rating,
		Comment: payload.Comment,
	}
	if err := a.store.UpsertRating(r.Context(), rating); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: rating}, nil
}
