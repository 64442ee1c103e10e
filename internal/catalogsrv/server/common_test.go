package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/apis"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/github"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/identity"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/ingest"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/npm"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
	"github.com/ceramicstudio/model-catalog/internal/common/httpx"
)

// allowVerifier accepts every JWS; identity verdicts have their own tests.
type allowVerifier struct{}

func (allowVerifier) Verify(ctx context.Context, did, signed string) apperrors.Error {
	return nil
}

type denyVerifier struct{}

func (denyVerifier) Verify(ctx context.Context, did, signed string) apperrors.Error {
	return identity.ErrJWSMismatch
}

type testEnv struct {
	server *CatalogServer
	store  *db.Store
}

// newTestEnv wires a server against a temp-file store and fake GitHub/npm
// endpoints serving a monorepo with the given model directories.
func newTestEnv(t *testing.T, verifier identity.Verifier, modelIDs ...string) *testEnv {
	t.Helper()

	store, aerr := db.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.Nil(t, aerr)
	t.Cleanup(func() { store.Close() })

	tree := []github.TreeEntry{{Path: "packages", Type: "tree"}}
	files := map[string]string{}
	for _, id := range modelIDs {
		base := "packages/" + id
		tree = append(tree,
			github.TreeEntry{Path: base, Type: "tree"},
			github.TreeEntry{Path: base + "/package.json", Type: "blob"},
			github.TreeEntry{Path: base + "/README.md", Type: "blob"},
			github.TreeEntry{Path: base + "/schemas", Type: "tree"},
			github.TreeEntry{Path: base + "/schemas/Definition.json", Type: "blob"},
		)
		files[base+"/package.json"] = `{"name":"@datamodels/` + id + `","version":"1.0.0","author":"someone","keywords":["ceramic","did"]}`
		files[base+"/README.md"] = "# " + id
		files[base+"/schemas/Definition.json"] = `{"type":"object"}`
	}

	apiSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/git/trees/") {
			json.NewEncoder(w).Encode(map[string]any{"tree": tree})
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(apiSrv.Close)

	rawSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /{owner}/{repo}/{branch}/{path...}
		parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 4)
		if len(parts) < 4 {
			http.NotFound(w, r)
			return
		}
		content, ok := files[parts[3]]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))
	t.Cleanup(rawSrv.Close)

	npmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/downloads/point/") {
			w.Write([]byte(`{"downloads":7,"package":"x"}`))
			return
		}
		if strings.HasPrefix(r.URL.Path, "/-/v1/search") {
			w.Write([]byte(`{"objects":[]}`))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(npmSrv.Close)

	ghFactory := func(owner, repo string) *github.Client {
		return github.New(owner, repo, github.WithAPIBase(apiSrv.URL), github.WithRawBase(rawSrv.URL))
	}
	assembler := ingest.NewAssembler(ghFactory("ceramicstudio", "datamodels"), "main")
	ingestor := ingest.NewIngestor(store, assembler)
	npmClient := npm.New(npm.WithRegistryBase(npmSrv.URL), npm.WithAPIBase(npmSrv.URL))

	api := apis.New(store, npmClient, ingestor, ghFactory, verifier)
	s, err := CreateNewServer(api)
	require.NoError(t, err)
	s.MountHandlers()

	return &testEnv{server: s, store: store}
}

func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.server.Router.ServeHTTP(rr, req)
	return rr
}

func envelope(t *testing.T, rr *httptest.ResponseRecorder) httpx.Envelope {
	t.Helper()
	var env httpx.Envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), "body: %s", rr.Body.String())
	return env
}

// decodeData re-marshals the envelope's data field into out.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out any) {
	t.Helper()
	env := envelope(t, rr)
	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}
