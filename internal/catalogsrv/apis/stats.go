package apis

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/ingest"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

func (a *API) getStats(r *http.Request) (*httpx.Response, error) {
	modelID := r.URL.Query().Get("modelid")
	if modelID == "" {
		result, err := a.store.GetAllStats(r.Context())
		if err != nil {
			return nil, err
		}
		return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
	}
	result, err := a.store.GetStats(r.Context(), modelID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

type statsPayload struct {
	ModelID    string `json:"modelid" validate:"required"`
	NPMPackage string `json:"npm_package"`
	NumStreams int    `json:"num_streams"`
}

// postStats refreshes one model's registry statistics, merging fresh
// numbers with the stored row (fresh wins unless zero-valued).
func (a *API) postStats(r *http.Request) (*httpx.Response, error) {
	var payload statsPayload
	if err := httpx.GetRequestData(r, &payload); err != nil {
		return nil, err
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}

	pkg := payload.NPMPackage
	if pkg == "" {
		pkg = a.packageForModel(r, payload.ModelID)
	}

	stat, err := ingest.RefreshStats(r.Context(), a.store, a.npm, payload.ModelID, pkg, payload.NumStreams)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: stat}, nil
}

// packageForModel resolves the published package name for a model: the
// user-model record's package when present, else the monorepo's
// @datamodels scope convention.
func (a *API) packageForModel(r *http.Request, modelID string) string {
	userModels, err := a.store.ListUserModels(r.Context(), "")
	if err == nil {
		for _, um := range userModels {
			if um.ModelID == modelID {
				return um.NPMPackage
			}
		}
	}
	return "@datamodels/" + modelID
}
