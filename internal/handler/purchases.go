package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vantol/PackForge_Go/internal/domain"
	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/repository"
)

// PurchaseView is one reconciled purchase with its issued cards
type PurchaseView struct {
	ExternalPackID int64                   `json:"externalPackId"`
	BuyerAddress   string                  `json:"buyerAddress"`
	UserID         *string                 `json:"userId"`
	Status         domain.PurchaseStatus   `json:"status"`
	TxRef          string                  `json:"txRef"`
	CreatedAt      time.Time               `json:"createdAt"`
	FulfilledAt    *time.Time              `json:"fulfilledAt"`
	Cards          []domain.PackCardRecord `json:"cards"`
}

// PurchasesResponse is the body of GET /api/v1/pack/purchases
type PurchasesResponse struct {
	Wallet    string         `json:"wallet"`
	Purchases []PurchaseView `json:"purchases"`
}

// HandleGetPurchases lists a wallet's purchases with their card records
func HandleGetPurchases(purchases repository.Purchase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		walletAddr := strings.ToLower(strings.TrimSpace(r.URL.Query().Get(QueryParamWallet)))
		if walletAddr == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, QueryParamWallet))
			return
		}

		ctx := r.Context()
		list, err := purchases.ListByWallet(ctx, walletAddr)
		if err != nil {
			logger.FromContext(ctx).Error(ErrMsgGetPurchasesFailed, "wallet", walletAddr, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		views := make([]PurchaseView, 0, len(list))
		for _, p := range list {
			cards, err := purchases.CardsByPurchase(ctx, p.ID)
			if err != nil {
				logger.FromContext(ctx).Error(ErrMsgGetPurchasesFailed, "purchase_id", p.ID, "error", err)
				statusCode, userMsg := mapServiceErrorToUserMessage(err)
				respondError(w, statusCode, userMsg)
				return
			}
			if cards == nil {
				cards = []domain.PackCardRecord{}
			}
			views = append(views, PurchaseView{
				ExternalPackID: p.Key.ExternalPackID,
				BuyerAddress:   p.BuyerAddress,
				UserID:         p.UserID,
				Status:         p.Status,
				TxRef:          p.TxRef,
				CreatedAt:      p.CreatedAt,
				FulfilledAt:    p.FulfilledAt,
				Cards:          cards,
			})
		}

		respondJSON(w, http.StatusOK, PurchasesResponse{Wallet: walletAddr, Purchases: views})
	}
}
