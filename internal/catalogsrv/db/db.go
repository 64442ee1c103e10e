// Package db implements the catalog store on a single local SQLite file.
// Every mutating operation is a single transaction: either all rows for
// the operation land, or none do.
package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/ceramicstudio/model-catalog/internal/catalogsrv/db/dberror"
	"github.com/ceramicstudio/model-catalog/internal/common/apperrors"
)

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the catalog database at dbFile and
// ensures the schema exists.
func Open(dbFile string) (*Store, apperrors.Error) {
	if dir := filepath.Dir(dbFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
	}
	sqldb, err := sql.Open("sqlite3", dbFile)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY
	// between concurrent request transactions.
	sqldb.SetMaxOpenConns(1)
	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, dberror.ErrDatabase.Err(err)
	}
	s := &Store{db: sqldb}
	if aerr := s.createTables(context.Background()); aerr != nil {
		sqldb.Close()
		return nil, aerr
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) apperrors.Error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	for _, ddl := range createTableStatements {
		if _, err := tx.ExecContext(ctx, ddl); err != nil {
			tx.Rollback()
			log.Ctx(ctx).Error().Err(err).Msg("failed to create table")
			return dberror.ErrDatabase.Err(err)
		}
	}
	if err := tx.Commit(); err != nil {
		return dberror.ErrDatabase.Err(err)
	}
	return nil
}
