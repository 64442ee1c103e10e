package db

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// UpsertStats replaces a model's statistics row, timestamped at write
// time. Fallback merging against the prior row happens in the ingest
// layer; the store writes exactly what it is given.
func (s *Store) UpsertStats(ctx context.Context, stat models.Stat) apperrors.Error {
	query := `
		INSERT OR REPLACE INTO stats(modelid, monthly_downloads, npm_score, npm_quality, num_streams, last_updated)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
	`
	if _, errdb := s.db.ExecContext(ctx, query,
		stat.ModelID, stat.MonthlyDownloads, stat.NpmScore, stat.NpmQuality, stat.NumStreams); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Str("modelid", stat.ModelID).Msg("failed to upsert stats")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}

// GetStats returns one model's statistics row, or ErrNotFound.
func (s *Store) GetStats(ctx context.Context, modelID string) (*models.Stat, apperrors.Error) {
	query := `
		SELECT modelid, monthly_downloads, npm_score, npm_quality, num_streams, last_updated
		FROM stats
		WHERE modelid = ?
	`
	var st models.Stat
	errdb := s.db.QueryRowContext(ctx, query, modelID).
		Scan(&st.ModelID, &st.MonthlyDownloads, &st.NpmScore, &st.NpmQuality, &st.NumStreams, &st.LastUpdated)
	if errdb == sql.ErrNoRows {
		return nil, dberror.ErrNotFound.Msg("error-stats-not-found")
	}
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return &st, nil
}

// GetAllStats returns the statistics rows for every model.
func (s *Store) GetAllStats(ctx context.Context) ([]models.Stat, apperrors.Error) {
	query := `
		SELECT modelid, monthly_downloads, npm_score, npm_quality, num_streams, last_updated
		FROM stats
	`
	rows, errdb := s.db.QueryContext(ctx, query)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.Stat{}
	for rows.Next() {
		var st models.Stat
		if errdb := rows.Scan(&st.ModelID, &st.MonthlyDownloads, &st.NpmScore, &st.NpmQuality, &st.NumStreams, &st.LastUpdated); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		result = append(result, st)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}
