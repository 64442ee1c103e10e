package apis

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/ingest"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

func (a *API) getUserModels(r *http.Request) (*httpx.Response, error) {
	userID := r.URL.Query().Get("userid")
	result, err := a.store.ListUserModels(r.Context(), userID)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: result}, nil
}

type userModelPayload struct {
	UserID     string `json:"userid" validate:"required"`
	ModelID    string `json:"modelid" validate:"required"`
	NPMPackage string `json:"npm_package" validate:"required"`
	RepoURL    string `json:"repo_url" validate:"required"`
}

// postUserModels registers a user-submitted model: its bundle is
// assembled from the submitted repository and persisted together with the
// user-model record in one transaction.
func (a *API) postUserModels(r *http.Request) (*httpx.Response, error) {
	ctx := r.Context()

	var payload userModelPayload
	if err := httpx.GetRequestData(r, &payload); err != nil {
		return nil, err
	}
	if err := validatePayload(&payload); err != nil {
		return nil, err
	}

	owner, repo, aerr := parseRepoURL(payload.RepoURL)
	if aerr != nil {
		return nil, aerr
	}

	asm := ingest.NewAssembler(a.github(owner, repo), "main")
	bundle, aerr := asm.AssembleBundle(ctx, payload.ModelID, nil)
	if aerr != nil {
		return nil, aerr
	}

	model, schemas := bundle.Record()
	userModel := models.UserModel{
		ModelID:    payload.ModelID,
		UserID:     payload.UserID,
		NPMPackage: payload.NPMPackage,
		RepoURL:    payload.RepoURL,
		Status:     "submitted",
	}
	if err := a.store.UpsertModel(ctx, model, schemas, &userModel); err != nil {
		return nil, err
	}
	return &httpx.Response{StatusCode: http.StatusOK, Data: map[string]string{"modelid": payload.ModelID}}, nil
}

// parseRepoURL extracts the owner and repository name from a GitHub URL.
func parseRepoURL(repoURL string) (owner, repo string, err apperrors.Error) {
	u, parseErr := url.Parse(repoURL)
	if parseErr != nil {
		return "", "", ErrInvalidRepo.Err(parseErr)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", ErrInvalidRepo
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
