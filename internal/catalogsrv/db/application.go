package db

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// AddApplication inserts the application row and one join row per model
// id in a single transaction, returning the generated application id.
func (s *Store) AddApplication(ctx context.Context, app models.Application) (id int64, err apperrors.Error) {
	tx, errdb := s.db.BeginTx(ctx, &sql.TxOptions{})
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to start transaction")
		return 0, dberror.ErrDatabase.Err(errdb)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
				log.Ctx(ctx).Error().Err(rollbackErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT INTO applications(name, image_url, description, userid, app_url, last_updated)
		VALUES (?, ?, ?, ?, ?, datetime('now'))
	`
	res, errdb := tx.ExecContext(ctx, query, app.Name, app.ImageURL, app.Description, app.UserID, app.AppURL)
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Str("name", app.Name).Msg("failed to insert application")
		return 0, dberror.ErrDatabase.Err(errdb)
	}
	id, errdb = res.LastInsertId()
	if errdb != nil {
		return 0, dberror.ErrDatabase.Err(errdb)
	}

	joinQuery := `
		INSERT INTO application_models(application_id, modelid)
		VALUES (?, ?)
	`
	for _, modelID := range app.ModelIDs {
		if _, errdb := tx.ExecContext(ctx, joinQuery, id, modelID); errdb != nil {
			log.Ctx(ctx).Error().Err(errdb).Str("modelid", modelID).Msg("failed to insert application model")
			return 0, dberror.ErrDatabase.Err(errdb)
		}
	}

	if errdb := tx.Commit(); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to commit transaction")
		return 0, dberror.ErrDatabase.Err(errdb)
	}
	return id, nil
}

// ListApplications joins applications with their model links, folding the
// join rows for each application into a single record with a model-id
// list.
func (s *Store) ListApplications(ctx context.Context) ([]models.Application, apperrors.Error) {
	query := `
		SELECT a.application_id, a.name, a.image_url, a.description, a.userid, a.app_url, a.last_updated, am.modelid
		FROM applications a, application_models am
		WHERE a.application_id = am.application_id
		ORDER BY a.application_id
	`
	rows, errdb := s.db.QueryContext(ctx, query)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.Application{}
	index := map[int64]int{}
	for rows.Next() {
		var app models.Application
		var modelID string
		if errdb := rows.Scan(&app.ApplicationID, &app.Name, &app.ImageURL, &app.Description,
			&app.UserID, &app.AppURL, &app.LastUpdated, &modelID); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		if i, ok := index[app.ApplicationID]; ok {
			result[i].ModelIDs = append(result[i].ModelIDs, modelID)
		} else {
			app.ModelIDs = []string{modelID}
			index[app.ApplicationID] = len(result)
			result = append(result, app)
		}
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}
