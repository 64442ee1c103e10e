// Package apis implements the catalog's REST handlers.
package apis

import (
	"net/http"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/github"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/identity"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/ingest"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/npm"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

// GithubFactory builds a repository reader for an owner/repo pair. The
// user-submission path reads from arbitrary repositories, so clients are
// constructed per request rather than held as a singleton.
type GithubFactory func(owner, repo string) *github.Client

// API holds the handlers' collaborators; everything is injected.
type API struct {
	store    *db.Store
	npm      *npm.Client
	ingestor *ingest.Ingestor
	github   GithubFactory
	verifier identity.Verifier
}

func New(store *db.Store, npmClient *npm.Client, ingestor *ingest.Ingestor, gh GithubFactory, verifier identity.Verifier) *API {
	return &API{
		store:    store,
		npm:      npmClient,
		ingestor: ingestor,
		github:   gh,
		verifier: verifier,
	}
}

func (a *API) liveness(r *http.Request) (*httpx.Response, error) {
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Data:       map[string]string{"message": "Johnny 5 is alive!"},
	}, nil
}
