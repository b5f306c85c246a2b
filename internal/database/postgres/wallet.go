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

type walletRepository struct {
	db *pgxpool.Pool
}

// NewWalletRepository creates a PostgreSQL wallet link store
func NewWalletRepository(db *pgxpool.Pool) repository.Wallet {
	return &walletRepository{db: db}
}

func (r *walletRepository) Link(ctx context.Context, link domain.WalletLink) error {
	query := `
		INSERT INTO wallet_links (wallet_address, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (wallet_address) DO UPDATE
		SET user_id = EXCLUDED.user_id
	`

	if _, err := r.db.Exec(ctx, query, link.Address, link.UserID, link.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpsertWalletLink, err)
	}
	return nil
}

func (r *walletRepository) Resolve(ctx context.Context, address string) (*string, error) {
	query := `SELECT user_id FROM wallet_links WHERE wallet_address = $1`

	var userID string
	err := r.db.QueryRow(ctx, query, address).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryWalletLink, err)
	}
	return &userID, nil
}
