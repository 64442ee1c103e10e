package db

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// UpsertRating records a user's rating for a model, replacing any earlier
// rating by the same user for the same model.
func (s *Store) UpsertRating(ctx context.Context, rating models.Rating) apperrors.Error {
	query := `
		INSERT OR REPLACE INTO ratings(userid, modelid, rating, comment)
		VALUES (?, ?, ?, ?)
	`
	if _, errdb := s.db.ExecContext(ctx, query,
		rating.UserID, rating.ModelID, rating.Rating, rating.Comment); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).
			Str("userid", rating.UserID).Str("modelid", rating.ModelID).
			Msg("failed to upsert rating")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}

// GetRatings returns the summed rating per model.
func (s *Store) GetRatings(ctx context.Context) ([]models.RatingTotal, apperrors.Error) {
	query := `
		SELECT modelid, SUM(rating) AS total
		FROM ratings
		GROUP BY modelid
	`
	rows, errdb := s.db.QueryContext(ctx, query)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.RatingTotal{}
	for rows.Next() {
		var t models.RatingTotal
		if errdb := rows.Scan(&t.ModelID, &t.Total); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		result = append(result, t)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}

// GetUserRatings returns every rating one user has submitted.
func (s *Store) GetUserRatings(ctx context.Context, userID string) ([]models.Rating, apperrors.Error) {
	query := `
		SELECT userid, modelid, rating, comment FROM ratings WHERE userid = ?
	`
	rows, errdb := s.db.QueryContext(ctx, query, userID)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.Rating{}
	for rows.Next() {
		var r models.Rating
		if errdb := rows.Scan(&r.UserID, &r.ModelID, &r.Rating, &r.Comment); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		result = append(result, r)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}
