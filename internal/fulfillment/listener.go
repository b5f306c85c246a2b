package fulfillment

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/vantol/PackForge_Go/internal/chain"
	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/event"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/metrics"
	"github.com/vantol/PackForge_Go/internal/pack"
	"github.com/vantol/PackForge_Go/internal/repository"
	"github.com/vantol/PackForge_Go/internal/wallet"
)

// Config holds the listener's chain scope and operational bounds
type Config struct {
	NetworkID       int64
	ContractAddress string
	ChunkSize       int64
	LookbackWindow  int64
	MintTimeout     time.Duration
	MintMaxRetries  int

	// MintRetryDelay overrides the base backoff delay; zero means
	// MintRetryBaseDelay
	MintRetryDelay time.Duration
}

// Service reconciles on-chain pack purchases into locally issued cards
// and externally minted tokens, exactly once per purchase identity.
type Service interface {
	// Poll runs one reconciliation cycle: read the event log from the
	// persisted cursor to head in bounded chunks, process each purchase,
	// and advance the cursor after each completed chunk. Overlapping
	// calls no-op; a cycle that cannot read the log returns an error and
	// leaves the cursor where it was.
	Poll(ctx context.Context) error
}

type service struct {
	chain     chain.Client
	assembler pack.Assembler
	wallets   wallet.Service
	purchases repository.Purchase
	cursor    repository.Cursor
	bus       event.Bus
	cfg       Config

	pollMu sync.Mutex
}

// NewService creates the fulfillment listener
func NewService(
	chainClient chain.Client,
	assembler pack.Assembler,
	wallets wallet.Service,
	purchases repository.Purchase,
	cursor repository.Cursor,
	bus event.Bus,
	cfg Config,
) Service {
	return &service{
		chain:     chainClient,
		assembler: assembler,
		wallets:   wallets,
		purchases: purchases,
		cursor:    cursor,
		bus:       bus,
		cfg:       cfg,
	}
}

func (s *service) Poll(ctx context.Context) error {
	log := logger.FromContext(ctx)

	// Single-flight: a tick that lands while a cycle is running is dropped,
	// the cursor guarantees the next cycle picks up where this one ends
	if !s.pollMu.TryLock() {
		log.Debug(LogMsgPollSkipped)
		return nil
	}
	defer s.pollMu.Unlock()

	start := time.Now()
	defer func() {
		metrics.PollCycleDuration.Observe(time.Since(start).Seconds())
	}()

	head, err := s.chain.Head(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextReadHead, err)
	}

	pos, err := s.loadCursor(ctx, head)
	if err != nil {
		return err
	}

	if head <= pos {
		log.Debug(LogMsgNothingToDo, "head", head, "cursor", pos)
		return nil
	}

	for pos < head {
		end := pos + s.cfg.ChunkSize
		if end > head {
			end = head
		}

		events, err := s.chain.PurchaseEvents(ctx, pos+1, end)
		if err != nil {
			// Cursor untouched; the next cycle retries the same range
			return fmt.Errorf("%s: %w", ErrContextReadEvents, err)
		}

		for _, ev := range events {
			if err := s.processEvent(ctx, ev); err != nil {
				// Cursor untouched; the event is re-read next cycle
				return err
			}
		}

		if err := s.advanceCursor(ctx, end); err != nil {
			return err
		}
		log.Info(LogMsgChunkProcessed, "from", pos+1, "to", end, "events", len(events))
		pos = end
	}

	return nil
}

// loadCursor returns the position to resume from, initializing a missing
// cursor to head minus the lookback window so a first run never replays
// the whole historical log.
func (s *service) loadCursor(ctx context.Context, head int64) (int64, error) {
	cur, err := s.cursor.Get(ctx, s.cfg.NetworkID, s.cfg.ContractAddress)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextLoadCursor, err)
	}
	if cur != nil {
		return cur.Position, nil
	}

	pos := head - s.cfg.LookbackWindow
	if pos < 0 {
		pos = 0
	}
	if err := s.advanceCursor(ctx, pos); err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info(LogMsgCursorInitialized, "position", pos, "head", head)
	return pos, nil
}

func (s *service) advanceCursor(ctx context.Context, position int64) error {
	if err := s.cursor.Advance(ctx, s.cfg.NetworkID, s.cfg.ContractAddress, position); err != nil {
		return fmt.Errorf("%s: %w", ErrContextAdvanceCursor, err)
	}
	metrics.SyncCursorPosition.
		WithLabelValues(strconv.FormatInt(s.cfg.NetworkID, 10), s.cfg.ContractAddress).
		Set(float64(position))

	s.publish(ctx, event.CursorAdvanced, event.CursorAdvancedPayloadV1{
		NetworkID: s.cfg.NetworkID,
		Contract:  s.cfg.ContractAddress,
		Position:  position,
	})
	return nil
}

// processEvent reconciles one purchase event. Fulfillment failures are
// scoped to the purchase: they mark it failed and never abort the chunk.
// Store failures abort the chunk instead, so the cursor never advances
// past a purchase the store could not record.
func (s *service) processEvent(ctx context.Context, ev chain.PurchaseEvent) error {
	log := logger.FromContext(ctx)
	key := domain.PurchaseKey{
		NetworkID:       s.cfg.NetworkID,
		ContractAddress: s.cfg.ContractAddress,
		ExternalPackID:  ev.ExternalPackID,
	}

	// Unresolvable wallets still get their pack; attribution stays empty
	userID, err := s.wallets.Resolve(ctx, ev.BuyerAddress)
	if err != nil {
		log.Warn(LogMsgWalletUnresolved, "address", ev.BuyerAddress, "error", err)
		userID = nil
	}

	stored, created, err := s.purchases.CreateIfAbsent(ctx, &domain.PackPurchase{
		Key:          key,
		BuyerAddress: ev.BuyerAddress,
		UserID:       userID,
		Status:       domain.PurchaseStatusPurchased,
		TxRef:        ev.TxRef,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextCreate, err)
	}

	if !created {
		// Replayed delivery. Terminal statuses are absorbed silently; a
		// purchase stuck in purchased means a crash interrupted
		// fulfillment, so it is resumed here. Absorbed replays are not
		// counted: the purchase was already counted on its first pass.
		if stored.Status != domain.PurchaseStatusPurchased {
			log.Debug(LogMsgDuplicateEvent,
				"external_pack_id", key.ExternalPackID, "status", string(stored.Status))
			return nil
		}
		log.Info(LogMsgResumingPurchase, "external_pack_id", key.ExternalPackID)
	}

	if err := s.fulfill(ctx, stored); err != nil {
		log.Error(LogMsgPurchaseFailed,
			"external_pack_id", key.ExternalPackID, "purchase_id", stored.ID, "error", err)
		if markErr := s.purchases.MarkFailed(ctx, stored.ID); markErr != nil {
			log.Error(LogMsgMarkFailedError, "purchase_id", stored.ID, "error", markErr)
			return fmt.Errorf("%s: %w", ErrContextMarkFailed, markErr)
		}
		metrics.PurchasesProcessed.WithLabelValues(string(domain.PurchaseStatusFailed)).Inc()
		s.publish(ctx, event.PurchaseFailed, event.PurchaseFailedPayloadV1{
			NetworkID:      key.NetworkID,
			Contract:       key.ContractAddress,
			ExternalPackID: key.ExternalPackID,
			Reason:         err.Error(),
		})
	}
	return nil
}

// fulfill runs selection, mint and persistence for one purchase. Card
// records and the fulfilled transition commit together, so a failure at
// any step leaves no partial records behind.
func (s *service) fulfill(ctx context.Context, purchase *domain.PackPurchase) error {
	owner := purchase.BuyerAddress
	if purchase.UserID != nil {
		owner = *purchase.UserID
	}

	opened, err := s.assembler.OpenBonus(ctx, owner)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextSelect, err)
	}
	if len(opened.Cards) == 0 {
		return fmt.Errorf("%s: %w", ErrMsgNoCardsSelected, domain.ErrCatalogExhausted)
	}

	identities := make([]string, len(opened.Cards))
	for i, c := range opened.Cards {
		identities[i] = c.Key().String()
	}

	receipt, err := s.mintWithRetry(ctx, purchase.BuyerAddress, identities)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextMint, err)
	}

	// Token refs come from the receipt's own minted entries, keyed by
	// identity rather than order
	tokenByIdentity := make(map[string]string, len(receipt.Minted))
	for _, m := range receipt.Minted {
		tokenByIdentity[m.Identity] = m.TokenRef
	}

	records := make([]domain.PackCardRecord, len(opened.Cards))
	for i, c := range opened.Cards {
		records[i] = domain.PackCardRecord{
			PurchaseID: purchase.ID,
			TokenRef:   tokenByIdentity[c.Key().String()],
			Key:        c.Key(),
			Tier:       c.Tier,
			Role:       c.Role,
			MintTxRef:  receipt.TxRef,
		}
	}

	fulfilledAt := time.Now().UTC()
	if err := s.purchases.MarkFulfilled(ctx, purchase.ID, receipt.TxRef, fulfilledAt, records); err != nil {
		return fmt.Errorf("%s: %w", ErrContextPersist, err)
	}

	metrics.PurchasesProcessed.WithLabelValues(string(domain.PurchaseStatusFulfilled)).Inc()
	pack.RecordOpenMetrics(domain.PackShapeBonus, metrics.SourceListener)
	logger.FromContext(ctx).Info(LogMsgPurchaseFulfilled,
		"purchase_id", purchase.ID,
		"external_pack_id", purchase.Key.ExternalPackID,
		"cards", len(records),
		"mint_tx", receipt.TxRef)

	s.publish(ctx, event.PurchaseFulfilled, event.PurchaseFulfilledPayloadV1{
		NetworkID:      purchase.Key.NetworkID,
		Contract:       purchase.Key.ContractAddress,
		ExternalPackID: purchase.Key.ExternalPackID,
		BuyerAddress:   purchase.BuyerAddress,
		CardCount:      len(records),
		MintTxRef:      receipt.TxRef,
	})
	return nil
}

// mintWithRetry calls MintBatch under a per-attempt timeout with bounded
// doubling backoff. One mint is in flight at a time; the external mint is
// sequence-ordered on the sender side.
func (s *service) mintWithRetry(ctx context.Context, toAddress string, identities []string) (*chain.MintReceipt, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	delay := s.cfg.MintRetryDelay
	if delay <= 0 {
		delay = MintRetryBaseDelay
	}
	// Config validation rejects a non-positive attempt cap, but the floor
	// holds regardless: a receipt or an error always comes back, never
	// neither.
	attempts := s.cfg.MintMaxRetries
	if attempts < 1 {
		attempts = 1
	}
	for attempt := 1; attempt <= attempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, s.cfg.MintTimeout)
		start := time.Now()
		receipt, err := s.chain.MintBatch(attemptCtx, toAddress, identities)
		cancel()

		if err == nil {
			metrics.MintDuration.Observe(time.Since(start).Seconds())
			return receipt, nil
		}
		lastErr = err
		log.Warn(LogMsgMintRetry, "attempt", attempt, "max", attempts, "error", err)

		if attempt < attempts {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			delay *= 2
		}
	}
	return nil, lastErr
}

func (s *service) publish(ctx context.Context, t event.Type, payload any) {
	if s.bus == nil {
		return
	}
	e := event.Event{Version: event.SchemaVersion, Type: t, Payload: payload}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn("Event publish failed", "type", string(t), "error", err)
	}
}
