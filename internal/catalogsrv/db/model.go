package db

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// UpsertModel replaces the model row, replaces all of its schema rows and,
// when userModel is non-nil, replaces its user-model row. The three writes
// share one transaction. Calling it twice with the same arguments leaves
// the same row set.
func (s *Store) UpsertModel(ctx context.Context, model models.Model, schemas []models.Schema, userModel *models.UserModel) (err apperrors.Error) {
	tx, errdb := s.db.BeginTx(ctx, &sql.TxOptions{})
	if errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to start transaction")
		return dberror.ErrDatabase.Err(errdb)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && rollbackErr != sql.ErrTxDone {
				log.Ctx(ctx).Error().Err(rollbackErr).Msg("failed to rollback transaction")
			}
		}
	}()

	query := `
		INSERT OR REPLACE INTO models(modelid, version, author, keywords, readme, package_json)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, errdb := tx.ExecContext(ctx, query,
		model.ModelID, model.Version, model.Author, model.Keywords, model.Readme, model.PackageJSON); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Str("modelid", model.ModelID).Msg("failed to upsert model")
		return dberror.ErrDatabase.Err(errdb)
	}

	// Schemas are replaced as a set, so stale rows from a previous version
	// of the model must go first.
	if _, errdb := tx.ExecContext(ctx, `DELETE FROM schemas WHERE modelid = ?`, model.ModelID); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Str("modelid", model.ModelID).Msg("failed to clear model schemas")
		return dberror.ErrDatabase.Err(errdb)
	}
	schemaQuery := `
		INSERT OR REPLACE INTO schemas(schema_path, modelid, schema_name, schema_json)
		VALUES (?, ?, ?, ?)
	`
	for _, schema := range schemas {
		if _, errdb := tx.ExecContext(ctx, schemaQuery,
			schema.SchemaPath, model.ModelID, schema.SchemaName, schema.SchemaJSON); errdb != nil {
			log.Ctx(ctx).Error().Err(errdb).Str("schema_path", schema.SchemaPath).Msg("failed to upsert schema")
			return dberror.ErrDatabase.Err(errdb)
		}
	}

	if userModel != nil {
		userModelQuery := `
			INSERT OR REPLACE INTO user_models(modelid, userid, npm_package, repo_url, status, last_updated)
			VALUES (?, ?, ?, ?, ?, datetime('now'))
		`
		if _, errdb := tx.ExecContext(ctx, userModelQuery,
			model.ModelID, userModel.UserID, userModel.NPMPackage, userModel.RepoURL, userModel.Status); errdb != nil {
			log.Ctx(ctx).Error().Err(errdb).Str("modelid", model.ModelID).Msg("failed to upsert user model")
			return dberror.ErrDatabase.Err(errdb)
		}
	}

	if errdb := tx.Commit(); errdb != nil {
		log.Ctx(ctx).Error().Err(errdb).Msg("failed to commit transaction")
		return dberror.ErrDatabase.Err(errdb)
	}
	return nil
}

// ListModels returns every model row.
func (s *Store) ListModels(ctx context.Context) ([]models.Model, apperrors.Error) {
	query := `
		SELECT modelid, version, author, keywords, readme, package_json
		FROM models
	`
	rows, errdb := s.db.QueryContext(ctx, query)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.Model{}
	for rows.Next() {
		var m models.Model
		if errdb := rows.Scan(&m.ModelID, &m.Version, &m.Author, &m.Keywords, &m.Readme, &m.PackageJSON); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		result = append(result, m)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}

// ListModelIDs returns the identifiers of every stored model. Ingestion
// uses this to skip models that are already in the catalog.
func (s *Store) ListModelIDs(ctx context.Context) ([]string, apperrors.Error) {
	rows, errdb := s.db.QueryContext(ctx, `SELECT modelid FROM models`)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if errdb := rows.Scan(&id); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		ids = append(ids, id)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return ids, nil
}

// GetModel returns one model joined with all of its schemas.
func (s *Store) GetModel(ctx context.Context, modelID string) (*models.ModelWithSchemas, apperrors.Error) {
	var m models.ModelWithSchemas
	query := `
		SELECT modelid, version, author, keywords, readme, package_json
		FROM models
		WHERE modelid = ?
	`
	errdb := s.db.QueryRowContext(ctx, query, modelID).
		Scan(&m.ModelID, &m.Version, &m.Author, &m.Keywords, &m.Readme, &m.PackageJSON)
	if errdb == sql.ErrNoRows {
		return nil, dberror.ErrNotFound.Msg("error-model-not-found")
	}
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}

	schemaQuery := `
		SELECT schema_path, modelid, schema_name, schema_json
		FROM schemas
		WHERE modelid = ?
	`
	rows, errdb := s.db.QueryContext(ctx, schemaQuery, modelID)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()
	m.Schemas = []models.Schema{}
	for rows.Next() {
		var schema models.Schema
		if errdb := rows.Scan(&schema.SchemaPath, &schema.ModelID, &schema.SchemaName, &schema.SchemaJSON); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		m.Schemas = append(m.Schemas, schema)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return &m, nil
}

// SearchModels returns models whose identifier, schema content, keywords,
// author or readme contain the search text. The filter is an OR across all
// content fields, restricted to each model's own schema rows; models
// without schemas or stats still match on their own fields.
func (s *Store) SearchModels(ctx context.Context, search string) ([]models.SearchResult, apperrors.Error) {
	like := "%" + search + "%"
	query := `
		SELECT m.modelid, m.version, m.author, m.keywords, m.readme, m.package_json,
		       COALESCE(MAX(st.monthly_downloads), 0), COALESCE(MAX(st.npm_score), 0)
		FROM models m
		LEFT JOIN schemas sc ON sc.modelid = m.modelid
		LEFT JOIN stats st ON st.modelid = m.modelid
		WHERE m.modelid LIKE ? OR sc.schema_json LIKE ? OR m.keywords LIKE ? OR m.author LIKE ? OR m.readme LIKE ?
		GROUP BY m.modelid
	`
	rows, errdb := s.db.QueryContext(ctx, query, like, like, like, like, like)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.SearchResult{}
	for rows.Next() {
		var r models.SearchResult
		if errdb := rows.Scan(&r.ModelID, &r.Version, &r.Author, &r.Keywords, &r.Readme, &r.PackageJSON,
			&r.MonthlyDownloads, &r.NpmScore); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		result = append(result, r)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}
