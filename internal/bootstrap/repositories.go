package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vantol/PackForge_Go/internal/database/memory"
	"github.com/vantol/PackForge_Go/internal/database/postgres"
	"github.com/vantol/PackForge_Go/internal/ledger"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// Repositories holds the repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Ledger   repository.Ledger
	Purchase repository.Purchase
	Cursor   repository.Cursor
	Wallet   repository.Wallet
}

// InitializePostgresRepositories creates the Postgres-backed repository set
func InitializePostgresRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Ledger:   postgres.NewLedgerRepository(dbPool),
		Purchase: postgres.NewPurchaseRepository(dbPool),
		Cursor:   postgres.NewCursorRepository(dbPool),
		Wallet:   postgres.NewWalletRepository(dbPool),
	}
}

// InitializeMemoryRepositories creates an all-in-memory repository set for
// local development without a database. Nothing survives a restart, so a
// listener running against it would re-mint purchases after every boot.
func InitializeMemoryRepositories() *Repositories {
	return &Repositories{
		Ledger:   ledger.NewMemoryRepository(),
		Purchase: memory.NewPurchaseRepository(),
		Cursor:   memory.NewCursorRepository(),
		Wallet:   memory.NewWalletRepository(),
	}
}
