package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// SQLStore keeps every key in a single storage_entry table. It works against
// any database/sql driver whose dialect supports ON CONFLICT upserts
// (Postgres in production, SQLite in tests).
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM storage_entry WHERE key = $1`

	var value string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not query storage entry %q: %w", key, err)
		log.Error(err)
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value string) error {
	query := `INSERT INTO storage_entry (key, value) VALUES ($1, $2)
              ON CONFLICT (key) DO UPDATE SET value = excluded.value`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		err := fmt.Errorf("could not store entry %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM storage_entry WHERE key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		err := fmt.Errorf("could not delete entry %q: %w", key, err)
		log.Error(err)
		return err
	}
	return nil
}
