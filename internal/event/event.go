package event

import (
	"context"
	"sync"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/metrics"
	"github.com/vantol/PackForge_Go/internal/worker"
)

// Type represents the type of an event
type Type string

// Event types emitted by the distribution core
const (
	PackOpened        Type = "pack.opened"
	PurchaseFulfilled Type = "purchase.fulfilled"
	PurchaseFailed    Type = "purchase.failed"
	CursorAdvanced    Type = "sync.cursor.advanced"
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"`
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// SchemaVersion is the current event schema version
const SchemaVersion = "1.0"

// PackOpenedPayloadV1 is emitted after a direct pack open commits
type PackOpenedPayloadV1 struct {
	UserID    string           `json:"user_id"`
	Shape     domain.PackShape `json:"shape"`
	CardCount int              `json:"card_count"`
	Shortfall bool             `json:"shortfall"`
}

// PurchaseFulfilledPayloadV1 is emitted when an on-chain purchase reaches fulfilled
type PurchaseFulfilledPayloadV1 struct {
	NetworkID      int64  `json:"network_id"`
	Contract       string `json:"contract"`
	ExternalPackID int64  `json:"external_pack_id"`
	BuyerAddress   string `json:"buyer_address"`
	CardCount      int    `json:"card_count"`
	MintTxRef      string `json:"mint_tx_ref"`
}

// PurchaseFailedPayloadV1 is emitted when an on-chain purchase reaches failed
type PurchaseFailedPayloadV1 struct {
	NetworkID      int64  `json:"network_id"`
	Contract       string `json:"contract"`
	ExternalPackID int64  `json:"external_pack_id"`
	Reason         string `json:"reason"`
}

// CursorAdvancedPayloadV1 is emitted after a poll chunk fully commits
type CursorAdvancedPayloadV1 struct {
	NetworkID int64  `json:"network_id"`
	Contract  string `json:"contract"`
	Position  int64  `json:"position"`
}

// Handler processes a single event
type Handler func(ctx context.Context, e Event) error

// Bus publishes events to subscribed handlers
type Bus interface {
	Publish(ctx context.Context, e Event) error
	Subscribe(t Type, h Handler)
}

// memoryBus dispatches events to handlers through a worker pool so
// publishers never block on subscriber work.
type memoryBus struct {
	mu       sync.RWMutex
	handlers map[Type][]Handler
	pool     *worker.Pool
}

// NewBus creates an in-process bus backed by the given worker pool.
// The pool must be started by the caller.
func NewBus(pool *worker.Pool) Bus {
	return &memoryBus{
		handlers: make(map[Type][]Handler),
		pool:     pool,
	}
}

// Subscribe registers a handler for an event type
func (b *memoryBus) Subscribe(t Type, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// Publish hands the event to every subscribed handler via the worker pool.
// Events for a full queue are dropped with a warning; the bus carries
// notifications, not state, so dropping is preferable to blocking the
// fulfillment loop.
func (b *memoryBus) Publish(ctx context.Context, e Event) error {
	b.mu.RLock()
	hs := b.handlers[e.Type]
	b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(string(e.Type)).Inc()

	for _, h := range hs {
		h := h
		job := worker.JobFunc(func(jobCtx context.Context) error {
			if err := h(jobCtx, e); err != nil {
				metrics.EventHandlerErrors.WithLabelValues(string(e.Type)).Inc()
				return err
			}
			return nil
		})
		if !b.pool.TryEnqueue(job) {
			logger.FromContext(ctx).Warn(LogMsgEventDropped, "event_type", e.Type)
		}
	}
	return nil
}
