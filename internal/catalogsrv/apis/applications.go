package apis

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

func (a *API) getApplications(r *http.Request) (*httpx.Response, error) {
	result, err := a.store.ListApplications(r.Context())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

type applicationPayload struct {
	Name        string   `json:"name" validate:"required"`
	ImageURL    string   `json:"image_url"`
	Description string   `json:"description" validate:"required"`
	UserID      string   `json:"userid" validate:"required"`
	AppURL      string   `json:"app_url"`
	ModelIDs    []string `json:"model_ids"`
}

func (a *API) postApplications(r *http.Request) (*httpx.Response, error) {
	var payload applicationPayload
	if err := httpx.GetRequestData(r, &payload); err != nil {
		return nil, err
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}

	app := models.Application{
		Name:        payload.Name,
		ImageURL:    payload.ImageURL,
		Description: payload.Description,
		UserID:      payload.UserID,
		AppURL:      payload.AppURL,
		ModelIDs:    payload.ModelIDs,
	}
	id, err := a.store.AddApplication(r.Context(), app)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: map[string]int64{"application_id": id}}, nil
}
