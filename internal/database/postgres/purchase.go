package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/repository"
)

const purchaseColumns = `
	purchase_id, network_id, contract_address, external_pack_id,
	buyer_address, user_id, status, tx_ref, created_at, fulfilled_at
`

type purchaseRepository struct {
	db *pgxpool.Pool
}

// NewPurchaseRepository creates a PostgreSQL reconciliation store
func NewPurchaseRepository(db *pgxpool.Pool) repository.Purchase {
	return &purchaseRepository{db: db}
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

func (r *purchaseRepository) GetByKey(ctx context.Context, key domain.PurchaseKey) (*domain.PackPurchase, error) {
	query := `SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE network_id = $1 AND contract_address = $2 AND external_pack_id = $3`

	row := r.db.QueryRow(ctx, query, key.NetworkID, key.ContractAddress, key.ExternalPackID)
	purchase, err := scanPurchase(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", domain.ErrPurchaseNotFound, key.ExternalPackID)
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchase, err)
	}
	return purchase, nil
}

// CreateIfAbsent inserts the purchase unless its external identity is
// already present. The unique constraint arbitrates concurrent inserts;
// the loser reads back the winner's row.
func (r *purchaseRepository) CreateIfAbsent(ctx context.Context, purchase *domain.PackPurchase) (*domain.PackPurchase, bool, error) {
	query := `
		INSERT INTO purchases (network_id, contract_address, external_pack_id,
			buyer_address, user_id, status, tx_ref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (network_id, contract_address, external_pack_id) DO NOTHING
		RETURNING purchase_id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		purchase.Key.NetworkID, purchase.Key.ContractAddress, purchase.Key.ExternalPackID,
		purchase.BuyerAddress, purchase.UserID, string(purchase.Status),
		purchase.TxRef, purchase.CreatedAt,
	).Scan(&id)

	if err == nil {
		stored := *purchase
		stored.ID = id
		return &stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("%s: %w", ErrMsgInsertPurchase, err)
	}

	existing, err := r.GetByKey(ctx, purchase.Key)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

// MarkFulfilled transitions the purchase and writes its card records in
// one transaction. The status guard makes a replayed transition a no-op
// that inserts nothing.
func (r *purchaseRepository) MarkFulfilled(ctx context.Context, purchaseID int64, mintTxRef string, fulfilledAt time.Time, cards []domain.PackCardRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdatePurchase, err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE purchases
		SET status = $1, fulfilled_at = $2
		WHERE purchase_id = $3 AND status = $4`,
		string(domain.PurchaseStatusFulfilled), fulfilledAt,
		purchaseID, string(domain.PurchaseStatusPurchased),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdatePurchase, err)
	}
	if tag.RowsAffected() == 0 {
		// Already in a terminal status; nothing to record
		return nil
	}

	for _, card := range cards {
		_, err := tx.Exec(ctx, `
			INSERT INTO purchase_items (purchase_id, token_ref, item_identity,
				rarity_tier, role, mint_tx_ref)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			purchaseID, card.TokenRef, card.Key.String(),
			card.Tier, string(card.Role), mintTxRef,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgInsertPurchaseItem, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *purchaseRepository) MarkFailed(ctx context.Context, purchaseID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE purchases
		SET status = $1
		WHERE purchase_id = $2 AND status = $3`,
		string(domain.PurchaseStatusFailed), purchaseID,
		string(domain.PurchaseStatusPurchased),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgUpdatePurchase, err)
	}
	return nil
}

func (r *purchaseRepository) CardsByPurchase(ctx context.Context, purchaseID int64) ([]domain.PackCardRecord, error) {
	query := `
		SELECT purchase_id, token_ref, item_identity, rarity_tier, role, mint_tx_ref
		FROM purchase_items
		WHERE purchase_id = $1
		ORDER BY purchase_item_id
	`

	rows, err := r.db.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchaseItems, err)
	}
	defer rows.Close()

	var records []domain.PackCardRecord
	for rows.Next() {
		var identity, role string
		var rec domain.PackCardRecord
		if err := rows.Scan(&rec.PurchaseID, &rec.TokenRef, &identity, &rec.Tier, &role, &rec.MintTxRef); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchaseItems, err)
		}
		key, err := domain.ParseCardKey(identity)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchaseItems, err)
		}
		rec.Key = key
		rec.Role = domain.Role(role)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchaseItems, err)
	}
	return records, nil
}

func (r *purchaseRepository) ListByWallet(ctx context.Context, buyerAddress string) ([]domain.PackPurchase, error) {
	query := `SELECT ` + purchaseColumns + `
		FROM purchases
		WHERE buyer_address = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, buyerAddress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchase, err)
	}
	defer rows.Close()

	var purchases []domain.PackPurchase
	for rows.Next() {
		purchase, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgScanPurchase, err)
		}
		purchases = append(purchases, *purchase)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgQueryPurchase, err)
	}
	return purchases, nil
}

func scanPurchase(row pgx.Row) (*domain.PackPurchase, error) {
	var p domain.PackPurchase
	var status string
	err := row.Scan(
		&p.ID, &p.Key.NetworkID, &p.Key.ContractAddress, &p.Key.ExternalPackID,
		&p.BuyerAddress, &p.UserID, &status, &p.TxRef, &p.CreatedAt, &p.FulfilledAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PurchaseStatus(status)
	return &p, nil
}
