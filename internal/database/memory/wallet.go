package memory

import (
	"context"
	"sync"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

type walletRepository struct {
	mu    sync.Mutex
	links map[string]string
}

// NewWalletRepository creates an in-memory wallet link store
func NewWalletRepository() repository.Wallet {
	return &walletRepository{links: make(map[string]string)}
}

func (r *walletRepository) Link(_ context.Context, link domain.WalletLink) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.links[link.Address] = link.UserID
	return nil
}

func (r *walletRepository) Resolve(_ context.Context, address string) (*string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.links[address]
	if !ok {
		return nil, nil
	}
	return &userID, nil
}
