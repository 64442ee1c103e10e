package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/apis"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/config"
	commonmiddleware "github.com/ceramicstudio/model-catalog/internal/common/middleware"
)

type CatalogServer struct {
	Router *chi.Mux
	api    *apis.API
}

func CreateNewServer(api *apis.API) (*CatalogServer, error) {
	s := &CatalogServer{
		Router: chi.NewRouter(),
		api:    api,
	}
	return s, nil
}

func (s *CatalogServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(cors.Handler(cors.Options{
			AllowOriginFunc:  allowOrigin,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
			AllowCredentials: false,
		}))
	}
	s.Router.Get("/", s.api.LivenessHandler())
	s.Router.Mount("/api", s.api.Router())
}

// allowOrigin admits the configured origins, compared without their port,
// and reflects any localhost origin when serving localhost.
func allowOrigin(r *http.Request, origin string) bool {
	originNoPort := stripPort(origin)
	if strings.Contains(r.Host, "localhost") {
		return originNoPort == "http://localhost" || originNoPort == "https://localhost"
	}
	for _, allowed := range config.Config().AllowedOrigins {
		if originNoPort == stripPort(allowed) {
			return true
		}
	}
	return false
}

func stripPort(origin string) string {
	parts := strings.Split(origin, ":")
	if len(parts) < 2 {
		return origin
	}
	return strings.Join(parts[:2], ":")
}
