package apis

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

func (a *API) getModels(r *http.Request) (*httpx.Response, error) {
	result, err := a.store.ListModels(r.Context())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

func (a *API) getModel(r *http.Request) (*httpx.Response, error) {
	modelID := r.URL.Query().Get("modelid")
	if modelID == "" {
		return nil, ErrEmptyModelID
	}
	result, err := a.store.GetModel(r.Context(), modelID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

func (a *API) searchModels(r *http.Request) (*httpx.Response, error) {
	search := r.URL.Query().Get("search")
	if search == "" {
		return nil, ErrEmptySearch
	}
	result, err := a.store.SearchModels(r.Context(), search)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

func (a *API) updateModels(r *http.Request) (*httpx.Response, error) {
	result, err := a.ingestor.Sweep(r.Context())
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}
