package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"weddinginvites/internal/domain"
)

type snapshotRepository struct {
	DB *sql.DB
}

// NewSnapshotRepository returns a SnapshotStore holding one JSON-serialized
// partial personalization record per storage key.
func NewSnapshotRepository(db *sql.DB) domain.SnapshotStore {
	return &snapshotRepository{
		DB: db,
	}
}

func (r *snapshotRepository) Get(ctx context.Context, key string) (*domain.InviteParams, error) {
	query := `
		SELECT data
		FROM wedding_snapshots
		WHERE storage_key = $1
	`
	var raw []byte
	if err := r.DB.QueryRowContext(ctx, query, key).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	params := &domain.InviteParams{}
	if err := json.Unmarshal(raw, params); err != nil {
		// A corrupted snapshot is treated as absent, never as fatal.
		return nil, fmt.Errorf("%w: corrupted snapshot: %v", domain.ErrNotFound, err)
	}
	return params, nil
}

func (r *snapshotRepository) Put(ctx context.Context, key string, params *domain.InviteParams) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	query := `
		INSERT INTO wedding_snapshots (storage_key, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (storage_key) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()
	`
	_, err = r.DB.ExecContext(ctx, query, key, raw)
	return err
}
