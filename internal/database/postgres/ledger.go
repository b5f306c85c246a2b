package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

type ledgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a PostgreSQL uniqueness ledger store
func NewLedgerRepository(db *pgxpool.Pool) repository.Ledger {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) IsIssued(ctx context.Context, key domain.CardKey) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ledger WHERE item_identity = $1)`

	var issued bool
	if err := r.db.QueryRow(ctx, query, key.String()).Scan(&issued); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	return issued, nil
}

// Issue relies on the primary key for atomicity: of N concurrent inserts
// for one identity, the database lets exactly one row through.
func (r *ledgerRepository) Issue(ctx context.Context, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger (item_identity, owner_id, rarity_tier, issued_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_identity) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, entry.Key.String(), entry.OwnerID, entry.Tier, entry.IssuedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgInsertLedgerEntry, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyIssued, entry.Key)
	}
	return nil
}

func (r *ledgerRepository) EntriesByOwner(ctx context.Context, ownerID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT item_identity, owner_id, rarity_tier, issued_at
		FROM ledger
		WHERE owner_id = $1
		ORDER BY issued_at
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var identity string
		var entry domain.LedgerEntry
		if err := rows.Scan(&identity, &entry.OwnerID, &entry.Tier, &entry.IssuedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanLedgerEntry, err)
		}
		key, err := domain.ParseCardKey(identity)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanLedgerEntry, err)
		}
		entry.Key = key
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	return entries, nil
}

func (r *ledgerRepository) IssuedCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM ledger`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgQueryLedger, err)
	}
	return count, nil
}
