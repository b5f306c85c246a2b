package fulfillment

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vantol/PackForge_Go/internal/chain"
	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// fakeChain is a scripted external ledger. Events are placed at fixed
// positions; mint behavior is controlled per test.
type fakeChain struct {
	mu sync.Mutex

	head   int64
	events []chain.PurchaseEvent

	headErr   error
	eventsErr error
	mintErr   error
	// mintFailures fails this many mint calls before succeeding
	mintFailures int

	headCalls   int
	eventCalls  int
	mintCalls   int
	eventRanges [][2]int64
	nextToken   int

	// headGate, when set, blocks Head until the channel closes
	headGate chan struct{}
}

var _ chain.Client = (*fakeChain)(nil)

func (f *fakeChain) Head(_ context.Context) (int64, error) {
	f.mu.Lock()
	gate := f.headGate
	f.headCalls++
	head, err := f.head, f.headErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return head, err
}

func (f *fakeChain) PurchaseEvents(_ context.Context, from, to int64) ([]chain.PurchaseEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.eventCalls++
	f.eventRanges = append(f.eventRanges, [2]int64{from, to})
	if f.eventsErr != nil {
		return nil, f.eventsErr
	}

	var out []chain.PurchaseEvent
	for _, ev := range f.events {
		if ev.Position >= from && ev.Position <= to {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (f *fakeChain) MintBatch(_ context.Context, toAddress string, identities []string) (*chain.MintReceipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mintCalls++
	if f.mintErr != nil {
		return nil, f.mintErr
	}
	if f.mintFailures > 0 {
		f.mintFailures--
		return nil, fmt.Errorf("%w: gateway unavailable", domain.ErrExternalCall)
	}

	receipt := &chain.MintReceipt{TxRef: fmt.Sprintf("0xmint%d", f.mintCalls)}
	for _, id := range identities {
		f.nextToken++
		receipt.Minted = append(receipt.Minted, chain.MintedItem{
			TokenRef:  fmt.Sprintf("token-%d", f.nextToken),
			ToAddress: toAddress,
			Identity:  id,
		})
	}
	return receipt, nil
}

// memPurchaseRepo is a mutex-guarded in-memory reconciliation store.
// The error fields script a store outage for single writes.
type memPurchaseRepo struct {
	mu     sync.Mutex
	nextID int64
	byKey  map[domain.PurchaseKey]*domain.PackPurchase
	cards  map[int64][]domain.PackCardRecord
	mintTx map[int64]string

	createErr     error
	markFailedErr error
}

var _ repository.Purchase = (*memPurchaseRepo)(nil)

func newMemPurchaseRepo() *memPurchaseRepo {
	return &memPurchaseRepo{
		byKey:  make(map[domain.PurchaseKey]*domain.PackPurchase),
		cards:  make(map[int64][]domain.PackCardRecord),
		mintTx: make(map[int64]string),
	}
}

func (m *memPurchaseRepo) GetByKey(_ context.Context, key domain.PurchaseKey) (*domain.PackPurchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byKey[key]
	if !ok {
		return nil, domain.ErrPurchaseNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPurchaseRepo) CreateIfAbsent(_ context.Context, purchase *domain.PackPurchase) (*domain.PackPurchase, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, false, m.createErr
	}
	if existing, ok := m.byKey[purchase.Key]; ok {
		cp := *existing
		return &cp, false, nil
	}

	m.nextID++
	stored := *purchase
	stored.ID = m.nextID
	m.byKey[purchase.Key] = &stored
	cp := stored
	return &cp, true, nil
}

func (m *memPurchaseRepo) MarkFulfilled(_ context.Context, purchaseID int64, mintTxRef string, fulfilledAt time.Time, cards []domain.PackCardRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.byKey {
		if p.ID == purchaseID {
			if p.Status != domain.PurchaseStatusPurchased {
				return nil
			}
			p.Status = domain.PurchaseStatusFulfilled
			p.FulfilledAt = &fulfilledAt
			m.mintTx[purchaseID] = mintTxRef
			m.cards[purchaseID] = append([]domain.PackCardRecord(nil), cards...)
			return nil
		}
	}
	return domain.ErrPurchaseNotFound
}

func (m *memPurchaseRepo) MarkFailed(_ context.Context, purchaseID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.markFailedErr != nil {
		return m.markFailedErr
	}
	for _, p := range m.byKey {
		if p.ID == purchaseID {
			if p.Status == domain.PurchaseStatusPurchased {
				p.Status = domain.PurchaseStatusFailed
			}
			return nil
		}
	}
	return domain.ErrPurchaseNotFound
}

func (m *memPurchaseRepo) CardsByPurchase(_ context.Context, purchaseID int64) ([]domain.PackCardRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PackCardRecord(nil), m.cards[purchaseID]...), nil
}

func (m *memPurchaseRepo) ListByWallet(_ context.Context, buyerAddress string) ([]domain.PackPurchase, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.PackPurchase
	for _, p := range m.byKey {
		if p.BuyerAddress == buyerAddress {
			out = append(out, *p)
		}
	}
	return out, nil
}

// memCursorRepo enforces the monotonic guard the postgres implementation
// applies with GREATEST
type memCursorRepo struct {
	mu       sync.Mutex
	cursors  map[string]int64
	advances int
	getErr   error
}

var _ repository.Cursor = (*memCursorRepo)(nil)

func newMemCursorRepo() *memCursorRepo {
	return &memCursorRepo{cursors: make(map[string]int64)}
}

func cursorKey(networkID int64, contract string) string {
	return fmt.Sprintf("%d:%s", networkID, contract)
}

func (m *memCursorRepo) Get(_ context.Context, networkID int64, contract string) (*domain.SyncCursor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	pos, ok := m.cursors[cursorKey(networkID, contract)]
	if !ok {
		return nil, nil
	}
	return &domain.SyncCursor{
		NetworkID:       networkID,
		ContractAddress: contract,
		Position:        pos,
		UpdatedAt:       time.Now().UTC(),
	}, nil
}

func (m *memCursorRepo) Advance(_ context.Context, networkID int64, contract string, position int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advances++
	key := cursorKey(networkID, contract)
	if cur, ok := m.cursors[key]; !ok || position > cur {
		m.cursors[key] = position
	}
	return nil
}

// reset drops the persisted cursor, simulating a pre-persist crash
func (m *memCursorRepo) reset(networkID int64, contract string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cursors, cursorKey(networkID, contract))
}

func (m *memCursorRepo) position(networkID int64, contract string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cursors[cursorKey(networkID, contract)]
}

// staticWalletRepo resolves from a fixed address map
type staticWalletRepo struct {
	links map[string]string
}

var _ repository.Wallet = staticWalletRepo{}

func (s staticWalletRepo) Link(_ context.Context, link domain.WalletLink) error {
	s.links[link.Address] = link.UserID
	return nil
}

func (s staticWalletRepo) Resolve(_ context.Context, address string) (*string, error) {
	userID, ok := s.links[address]
	if !ok {
		return nil, nil
	}
	return &userID, nil
}
