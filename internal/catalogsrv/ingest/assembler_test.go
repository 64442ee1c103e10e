package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/github"
)

// fakeRepo serves a monorepo shaped like the datamodels repository: a
// recursive tree listing plus raw file content by path.
type fakeRepo struct {
	tree  []github.TreeEntry
	files map[string]string
}

func (f *fakeRepo) newAssembler(t *testing.T) *Assembler {
	t.Helper()

	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/repos/ceramicstudio/datamodels/git/trees/main", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"tree": f.tree})
	})
	api := httptest.NewServer(apiMux)
	t.Cleanup(api.Close)

	raw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path[len("/ceramicstudio/datamodels/main/"):]
		content, ok := f.files[path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(content))
	}))
	t.Cleanup(raw.Close)

	gh := github.New("ceramicstudio", "datamodels", github.WithAPIBase(api.URL), github.WithRawBase(raw.URL))
	return NewAssembler(gh, "main")
}

func modelFiles(id string) (entries []github.TreeEntry, files map[string]string) {
	base := "packages/" + id
	entries = []github.TreeEntry{
		{Path: base, Type: "tree"},
		{Path: base + "/package.json", Type: "blob"},
		{Path: base + "/README.md", Type: "blob"},
		{Path: base + "/schemas", Type: "tree"},
		{Path: base + "/schemas/Definition.json", Type: "blob"},
	}
	files = map[string]string{
		base + "/package.json":            `{"name":"@datamodels/` + id + `","version":"1.2.0","author":"someone","keywords":["ceramic","did"]}`,
		base + "/README.md":               "# " + id,
		base + "/schemas/Definition.json": `{"type":"object"}`,
	}
	return entries, files
}

func newFakeRepo(ids ...string) *fakeRepo {
	f := &fakeRepo{
		tree:  []github.TreeEntry{{Path: "packages", Type: "tree"}},
		files: map[string]string{},
	}
	for _, id := range ids {
		entries, files := modelFiles(id)
		f.tree = append(f.tree, entries...)
		for p, c := range files {
			f.files[p] = c
		}
	}
	return f
}

func TestAssembleBundle(t *testing.T) {
	asm := newFakeRepo("identity-profile").newAssembler(t)

	bundle, err := asm.AssembleBundle(context.Background(), "identity-profile", nil)
	require.Nil(t, err)
	assert.Equal(t, "identity-profile", bundle.ModelID)
	assert.Equal(t, "# identity-profile", bundle.Readme)
	require.Len(t, bundle.Schemas, 1)
	assert.Equal(t, "/Definition.json", bundle.Schemas[0].Name)
	assert.Equal(t, "packages/identity-profile/schemas/Definition.json", bundle.Schemas[0].Path)
}

func TestAssembleBundleAbortsOnBadSchema(t *testing.T) {
	repo := newFakeRepo("identity-profile")
	repo.files["packages/identity-profile/schemas/Definition.json"] = "not valid json{"
	asm := repo.newAssembler(t)

	bundle, err := asm.AssembleBundle(context.Background(), "identity-profile", nil)
	require.NotNil(t, err)
	// all-or-nothing: no partial bundle escapes
	assert.Nil(t, bundle)
}

func TestAssembleBundleAbortsOnMissingManifest(t *testing.T) {
	repo := newFakeRepo("identity-profile")
	delete(repo.files, "packages/identity-profile/package.json")
	asm := repo.newAssembler(t)

	bundle, err := asm.AssembleBundle(context.Background(), "identity-profile", nil)
	require.NotNil(t, err)
	assert.Nil(t, bundle)
}

func TestAssembleNewModelsSkipsExisting(t *testing.T) {
	asm := newFakeRepo("identity-profile", "identity-accounts", "3id-keychain").newAssembler(t)

	bundles, failures, err := asm.AssembleNewModels(context.Background(), []string{"identity-profile", "3id-keychain"})
	require.Nil(t, err)
	assert.Empty(t, failures)
	require.Len(t, bundles, 1)
	assert.Equal(t, "identity-accounts", bundles[0].ModelID)
}

func TestAssembleNewModelsCollectsFailures(t *testing.T) {
	repo := newFakeRepo("good-model", "bad-model")
	delete(repo.files, "packages/bad-model/README.md")
	asm := repo.newAssembler(t)

	bundles, failures, err := asm.AssembleNewModels(context.Background(), nil)
	require.Nil(t, err)
	require.Len(t, bundles, 1)
	assert.Equal(t, "good-model", bundles[0].ModelID)
	require.Len(t, failures, 1)
	assert.Equal(t, "bad-model", failures[0].ModelID)
	assert.NotEmpty(t, failures[0].Reason)
}

func TestBundleRecord(t *testing.T) {
	asm := newFakeRepo("identity-profile").newAssembler(t)
	bundle, err := asm.AssembleBundle(context.Background(), "identity-profile", nil)
	require.Nil(t, err)

	model, schemas := bundle.Record()
	assert.Equal(t, "1.2.0", model.Version)
	assert.Equal(t, "someone", model.Author)
	assert.Equal(t, "ceramic,did", model.Keywords)
	require.Len(t, schemas, 1)
	assert.Equal(t, "identity-profile", schemas[0].ModelID)
}

func TestManifestAuthorObject(t *testing.T) {
	b := &Bundle{
		ModelID:  "m",
		Manifest: json.RawMessage(`{"author":{"name":"A Person","email":"a@example.com"}}`),
	}
	model, _ := b.Record()
	assert.Equal(t, "A Person", model.Author)
}
