package bootstrap

import (
	"context"
	"log/slog"

	"github.com/vantol/PackForge_Go/internal/event"
	"github.com/vantol/PackForge_Go/internal/logger"
)

// RegisterEventHandlers subscribes the audit-log handlers. Distribution
// outcomes are worth a durable log line even when nothing else consumes
// the event.
func RegisterEventHandlers(bus event.Bus) {
	bus.Subscribe(event.PurchaseFulfilled, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.PurchaseFulfilledPayloadV1); ok {
			logger.FromContext(ctx).Info(LogMsgPurchaseFulfilledEvent,
				"network_id", p.NetworkID,
				"contract", p.Contract,
				"external_pack_id", p.ExternalPackID,
				"card_count", p.CardCount,
				"mint_tx_ref", p.MintTxRef)
		}
		return nil
	})

	bus.Subscribe(event.PurchaseFailed, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.PurchaseFailedPayloadV1); ok {
			logger.FromContext(ctx).Warn(LogMsgPurchaseFailedEvent,
				"network_id", p.NetworkID,
				"contract", p.Contract,
				"external_pack_id", p.ExternalPackID,
				"reason", p.Reason)
		}
		return nil
	})

	bus.Subscribe(event.PackOpened, func(ctx context.Context, e event.Event) error {
		if p, ok := e.Payload.(event.PackOpenedPayloadV1); ok {
			logger.FromContext(ctx).Info(LogMsgPackOpenedEvent,
				"user_id", p.UserID,
				"shape", p.Shape,
				"card_count", p.CardCount,
				"shortfall", p.Shortfall)
		}
		return nil
	})

	slog.Info(LogMsgAuditHandlersRegistered)
}
