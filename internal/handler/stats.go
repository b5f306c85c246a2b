package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/vantol/PackForge_Go/internal/catalog"
	"github.com/vantol/PackForge_Go/internal/ledger"
	"github.com/vantol/PackForge_Go/internal/logger"
)

// HandleGetCatalogStats reports how much of the catalog has been issued
func HandleGetCatalogStats(ledgerService ledger.Service, index *catalog.Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		stats, err := ledgerService.Stats(ctx, index.Size())
		if err != nil {
			logger.FromContext(ctx).Error(ErrMsgGetStatsFailed, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

// OwnerLedgerResponse is the body of GET /api/v1/ledger/owner
type OwnerLedgerResponse struct {
	UserID  string       `json:"userId"`
	Entries []OwnerEntry `json:"entries"`
}

// OwnerEntry is one issued card in an owner's audit view
type OwnerEntry struct {
	Identity string `json:"identity"`
	Tier     int    `json:"tier"`
	IssuedAt string `json:"issuedAt"`
}

// HandleGetOwnerLedger is an audit query over one owner's issued cards
func HandleGetOwnerLedger(ledgerService ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get(QueryParamUserID)
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, QueryParamUserID))
			return
		}

		ctx := r.Context()
		entries, err := ledgerService.EntriesByOwner(ctx, userID)
		if err != nil {
			logger.FromContext(ctx).Error(ErrMsgGetLedgerFailed, "user_id", userID, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		views := make([]OwnerEntry, 0, len(entries))
		for _, e := range entries {
			views = append(views, OwnerEntry{
				Identity: e.Key.String(),
				Tier:     e.Tier,
				IssuedAt: e.IssuedAt.UTC().Format(time.RFC3339),
			})
		}

		respondJSON(w, http.StatusOK, OwnerLedgerResponse{UserID: userID, Entries: views})
	}
}
