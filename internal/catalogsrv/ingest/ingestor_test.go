package ingest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/npm"
)

func newTestStore(t *testing.T) *db.Store {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.Nil(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSweepIngestsOnlyNewModels(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	existing, schemas := models.Model{ModelID: "already-there", PackageJSON: "{}"}, []models.Schema(nil)
	require.Nil(t, store.UpsertModel(ctx, existing, schemas, nil))

	asm := newFakeRepo("already-there", "brand-new").newAssembler(t)
	ing := NewIngestor(store, asm)

	result, err := ing.Sweep(ctx)
	require.Nil(t, err)
	assert.Equal(t, []string{"brand-new"}, result.Added)
	assert.Empty(t, result.Failures)

	got, err := store.GetModel(ctx, "brand-new")
	require.Nil(t, err)
	assert.Equal(t, "1.2.0", got.Version)
	assert.Len(t, got.Schemas, 1)

	// a second sweep finds nothing new
	result, err = ing.Sweep(ctx)
	require.Nil(t, err)
	assert.Empty(t, result.Added)
}

func newStatsClient(t *testing.T, downloads int, final, quality float64) *npm.Client {
	t.Helper()
	registry := http.NewServeMux()
	registry.HandleFunc("/-/v1/search", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"objects":[{"package":{"name":"@datamodels/identity-basic"},"score":{"final":%g,"detail":{"quality":%g,"popularity":0}}}]}`, final, quality)
	})
	reg := httptest.NewServer(registry)
	t.Cleanup(reg.Close)

	api := http.NewServeMux()
	api.HandleFunc("/downloads/point/last-month/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"downloads":%d,"package":"@datamodels/identity-basic"}`, downloads)
	})
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	return npm.New(npm.WithRegistryBase(reg.URL), npm.WithAPIBase(apiSrv.URL))
}

func TestRefreshStatsFallbackOnZero(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.Nil(t, store.UpsertStats(ctx, models.Stat{
		ModelID:          "identity-basic",
		MonthlyDownloads: 120,
		NpmScore:         0.7,
		NpmQuality:       0.4,
		NumStreams:       9,
	}))

	// fresh fetch: 500 downloads, zero scores
	client := newStatsClient(t, 500, 0, 0)
	stat, err := RefreshStats(ctx, store, client, "identity-basic", "@datamodels/identity-basic", 0)
	require.Nil(t, err)

	// fresh non-zero value wins, zero values fall back to stored
	assert.Equal(t, 500, stat.MonthlyDownloads)
	assert.InDelta(t, 0.7, stat.NpmScore, 1e-9)
	assert.InDelta(t, 0.4, stat.NpmQuality, 1e-9)
	assert.Equal(t, 9, stat.NumStreams)

	stored, err := store.GetStats(ctx, "identity-basic")
	require.Nil(t, err)
	assert.Equal(t, 500, stored.MonthlyDownloads)
	assert.InDelta(t, 0.7, stored.NpmScore, 1e-9)
}

func TestRefreshStatsNoPriorRow(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	client := newStatsClient(t, 11, 0.3, 0.2)
	stat, err := RefreshStats(ctx, store, client, "identity-basic", "@datamodels/identity-basic", 2)
	require.Nil(t, err)
	assert.Equal(t, 11, stat.MonthlyDownloads)
	assert.InDelta(t, 0.3, stat.NpmScore, 1e-9)
	assert.Equal(t, 2, stat.NumStreams)
}
