package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores one jsonb document per (device, key).
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Init creates the documents table when it does not exist yet.
func (s *Postgres) Init(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS user_documents (
		device_id  TEXT NOT NULL,
		key        TEXT NOT NULL,
		doc        JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (device_id, key)
	)
	`

	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create user_documents table: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, deviceID, key string) ([]byte, bool, error) {
	query := `
	SELECT doc
	FROM user_documents
	WHERE device_id = $1 AND key = $2
	`

	var raw []byte
	err := s.db.QueryRow(ctx, query, deviceID, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read document: %w", err)
	}
	return raw, true, nil
}

func (s *Postgres) Set(ctx context.Context, deviceID, key string, value []byte) error {
	query := `
	INSERT INTO user_documents (device_id, key, doc, updated_at)
	VALUES ($1, $2, $3, NOW())
	ON CONFLICT (device_id, key)
	DO UPDATE SET doc = $3, updated_at = NOW()
	`

	if _, err := s.db.Exec(ctx, query, deviceID, key, value); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, deviceID, key string) error {
	query := `DELETE FROM user_documents WHERE device_id = $1 AND key = $2`

	if _, err := s.db.Exec(ctx, query, deviceID, key); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
