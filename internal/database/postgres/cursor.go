package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

type cursorRepository struct {
	db *pgxpool.Pool
}

// NewCursorRepository creates a PostgreSQL sync cursor store
func NewCursorRepository(db *pgxpool.Pool) repository.Cursor {
	return &cursorRepository{db: db}
}

func (r *cursorRepository) Get(ctx context.Context, networkID int64, contract string) (*domain.SyncCursor, error) {
	query := `
		SELECT network_id, contract_address, last_processed_position, updated_at
		FROM sync_cursor
		WHERE network_id = $1 AND contract_address = $2
	`

	var cur domain.SyncCursor
	err := r.db.QueryRow(ctx, query, networkID, contract).
		Scan(&cur.NetworkID, &cur.ContractAddress, &cur.Position, &cur.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryCursor, err)
	}
	return &cur, nil
}

// Advance upserts the position under a GREATEST guard, so a stale writer
// can never move the cursor backwards.
func (r *cursorRepository) Advance(ctx context.Context, networkID int64, contract string, position int64) error {
	query := `
		INSERT INTO sync_cursor (network_id, contract_address, last_processed_position, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (network_id, contract_address) DO UPDATE
		SET last_processed_position = GREATEST(sync_cursor.last_processed_position, EXCLUDED.last_processed_position),
		    updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, networkID, contract, position); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpsertCursor, err)
	}
	return nil
}
