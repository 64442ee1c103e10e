package ingest

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/npm"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// Ingestor drives the full ingestion sweep: new-model discovery through
// the assembler and transactional persistence through the store.
type Ingestor struct {
	store *db.Store
	asm   *Assembler
}

func NewIngestor(store *db.Store, asm *Assembler) *Ingestor {
	return &Ingestor{store: store, asm: asm}
}

// SweepResult reports what a sweep added and which models failed, with
// per-model reasons.
type SweepResult struct {
	Added    []string  `json:"added"`
	Failures []Failure `json:"failures"`
}

// Sweep ingests every model present in the source repository but absent
// from the store. Each model's write is self-contained; a model that
// fails to persist is reported as a failure and the sweep continues, so
// already-committed models stay committed.
func (ing *Ingestor) Sweep(ctx context.Context) (*SweepResult, apperrors.Error) {
	existing, err := ing.store.ListModelIDs(ctx)
	if err != nil {
		return nil, err
	}

	bundles, failures, err := ing.asm.AssembleNewModels(ctx, existing)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Added: []string{}, Failures: failures}
	for i := range bundles {
		model, schemas := bundles[i].Record()
		if err := ing.store.UpsertModel(ctx, model, schemas, nil); err != nil {
			log.Ctx(ctx).Error().Str("modelid", model.ModelID).Str("reason", err.ErrorAll()).Msg("failed to persist model")
			result.Failures = append(result.Failures, Failure{ModelID: model.ModelID, Reason: err.ErrorAll()})
			continue
		}
		result.Added = append(result.Added, model.ModelID)
	}
	return result, nil
}

// RefreshStats fetches fresh registry numbers for one model and merges
// them with the stored row field-by-field: a fresh value wins unless it is
// zero-valued, in which case the stored value is kept. The stream count is
// supplied by the caller (zero keeps the stored count).
func RefreshStats(ctx context.Context, store *db.Store, client *npm.Client, modelID, pkg string, numStreams int) (*models.Stat, apperrors.Error) {
	point, err := client.Downloads(ctx, pkg, npm.PeriodLastMonth)
	if err != nil {
		return nil, err
	}
	score, err := client.RegistryScore(ctx, pkg)
	if err != nil {
		return nil, err
	}

	fresh := models.Stat{
		ModelID:          modelID,
		MonthlyDownloads: point.Downloads,
		NpmScore:         score.Final,
		NpmQuality:       score.Quality,
		NumStreams:       numStreams,
	}

	prior, err := store.GetStats(ctx, modelID)
	if err != nil && !errors.Is(err, dberror.ErrNotFound) {
		return nil, err
	}
	if prior != nil {
		fresh = mergeStats(fresh, *prior)
	}

	if err := store.UpsertStats(ctx, fresh); err != nil {
		return nil, err
	}
	return &fresh, nil
}

func mergeStats(fresh, prior models.Stat) models.Stat {
	if fresh.MonthlyDownloads == 0 {
		fresh.MonthlyDownloads = prior.MonthlyDownloads
	}
	if fresh.NpmScore == 0 {
		fresh.NpmScore = prior.NpmScore
	}
	if fresh.NpmQuality == 0 {
		fresh.NpmQuality = prior.NpmQuality
	}
	if fresh.NumStreams == 0 {
		fresh.NumStreams = prior.NumStreams
	}
	return fresh
}
