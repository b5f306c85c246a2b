package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/event"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/metrics"
	"github.com/vantol/PackForge_Go/internal/pack"
)

// OpenPackRequest is the body of POST /api/v1/pack/open
type OpenPackRequest struct {
	UserID       string `json:"userId" validate:"required,max=120"`
	Shape        string `json:"shape" validate:"required,packshape"`
	StarterIndex int    `json:"starterIndex" validate:"min=0,max=2"`
}

// OpenPackResponse mirrors the assembled pack
type OpenPackResponse struct {
	Cards     []domain.Card `json:"cards"`
	Shortfall bool          `json:"shortfall"`
}

// HandleOpenPack opens a pack synchronously for a local user. A partially
// filled pack is a success with shortfall set, never an error.
func HandleOpenPack(assembler pack.Assembler, eventBus event.Bus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenPackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}
		if err := GetValidator().ValidateStruct(req); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  ErrMsgInvalidRequest,
				"fields": FormatValidationError(err),
			})
			return
		}

		ctx := r.Context()
		var opened *domain.OpenedPack
		var err error
		shape := domain.PackShape(req.Shape)
		switch shape {
		case domain.PackShapeStarter:
			opened, err = assembler.OpenStarter(ctx, req.UserID, req.StarterIndex)
		default:
			opened, err = assembler.OpenBonus(ctx, req.UserID)
		}
		if err != nil {
			logger.FromContext(ctx).Error(ErrMsgOpenPackFailed, "user_id", req.UserID, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		pack.RecordOpenMetrics(shape, metrics.SourceDirect)
		if eventBus != nil {
			_ = eventBus.Publish(ctx, event.Event{
				Version: event.SchemaVersion,
				Type:    event.PackOpened,
				Payload: event.PackOpenedPayloadV1{
					UserID:    req.UserID,
					Shape:     shape,
					CardCount: len(opened.Cards),
					Shortfall: opened.Shortfall,
				},
			})
		}

		cards := opened.Cards
		if cards == nil {
			cards = []domain.Card{}
		}
		respondJSON(w, http.StatusOK, OpenPackResponse{
			Cards:     cards,
			Shortfall: opened.Shortfall,
		})
	}
}
