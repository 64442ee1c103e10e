package db

import (
	"context"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/models"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

// ListUserModels returns user-registered models, filtered to one user
// when userID is non-empty.
func (s *Store) ListUserModels(ctx context.Context, userID string) ([]models.UserModel, apperrors.Error) {
	query := `
		SELECT modelid, userid, npm_package, repo_url, status, last_updated
		FROM user_models
	`
	args := []any{}
	if userID != "" {
		query += ` WHERE userid = ?`
		args = append(args, userID)
	}

	rows, errdb := s.db.QueryContext(ctx, query, args...)
	if errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	defer rows.Close()

	result := []models.UserModel{}
	for rows.Next() {
		var um models.UserModel
		if errdb := rows.Scan(&um.ModelID, &um.UserID, &um.NPMPackage, &um.RepoURL, &um.Status, &um.LastUpdated); errdb != nil {
			return nil, dberror.ErrDatabase.Err(errdb)
		}
		result = append(result, um)
	}
	if errdb := rows.Err(); errdb != nil {
		return nil, dberror.ErrDatabase.Err(errdb)
	}
	return result, nil
}
