package handler

import (
	"encoding/json"
	"net/http"

	"github.com/vantol/PackForge_Go/internal/logger"
	"github.com/vantol/PackForge_Go/internal/wallet"
)

// LinkWalletRequest is the body of POST /api/v1/wallet/link
type LinkWalletRequest struct {
	Address string `json:"address" validate:"required,max=80"`
	UserID  string `json:"userId" validate:"required,max=120"`
}

// HandleLinkWallet records a buyer-address to user mapping
func HandleLinkWallet(walletService wallet.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LinkWalletRequest
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
		if err := walletService.Link(ctx, req.Address, req.UserID); err != nil {
			logger.FromContext(ctx).Error(ErrMsgLinkWalletFailed, "address", req.Address, "error", err)
			statusCode, userMsg := mapServiceErrorToUserMessage(err)
			respondError(w, statusCode, userMsg)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgWalletLinked})
	}
}
