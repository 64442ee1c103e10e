package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/identity"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

// Router mounts the API surface. Write endpoints that prove identity run
// behind the DID verification middleware.
func (a *API) Router() chi.Router {
	r := chi.NewRouter()

	openHandlers := []httpx.ResponseHandlerParam{
		{Method: http.MethodGet, Path: "/get_model_ratings", Handler: a.getModelRatings},
		{Method: http.MethodGet, Path: "/get_models", Handler: a.getModels},
		{Method: http.MethodGet, Path: "/get_model", Handler: a.getModel},
		{Method: http.MethodGet, Path: "/search_models", Handler: a.searchModels},
		{Method: http.MethodGet, Path: "/rate", Handler: a.getUserRatings},
		{Method: http.MethodGet, Path: "/stats", Handler: a.getStats},
		{Method: http.MethodPost, Path: "/stats", Handler: a.postStats},
		{Method: http.MethodGet, Path: "/user_models", Handler: a.getUserModels},
		{Method: http.MethodGet, Path: "/applications", Handler: a.getApplications},
		{Method: http.MethodPost, Path: "/update_models", Handler: a.updateModels},
	}
	for _, h := range openHandlers {
		r.Method(h.Method, h.Path, httpx.WrapHandler(h.Handler))
	}

	verifiedHandlers := []httpx.ResponseHandlerParam{
		{Method: http.MethodPost, Path: "/rate", Handler: a.postRate},
		{Method: http.MethodPost, Path: "/user_models", Handler: a.postUserModels},
		{Method: http.MethodPost, Path: "/applications", Handler: a.postApplications},
	}
	r.Group(func(gr chi.Router) {
		gr.Use(identity.Middleware(a.verifier))
		for _, h := range verifiedHandlers {
			gr.Method(h.Method, h.Path, httpx.WrapHandler(h.Handler))
		}
	})

	return r
}

// LivenessHandler serves the root health check.
func (a *API) LivenessHandler() http.HandlerFunc {
	return httpx.WrapHandler(a.liveness)
}
