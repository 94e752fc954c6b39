package handlers

import (
	"net/http"
	"strconv"

	"postflow/internal/models"
	"postflow/internal/service"
)

// AccountHandler handles social account API requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ListAccounts handles GET /social-accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	accounts, err := h.accountService.ListAccounts(claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch social accounts", err)
		return
	}
	if accounts == nil {
		accounts = []models.SocialAccount{}
	}

	respondJSON(w, http.StatusOK, accounts)
}

// DisconnectAccount handles DELETE /social-accounts/{id}
func (h *AccountHandler) DisconnectAccount(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	if claims == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: ErrUnauthorized})
		return
	}

	accountID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "Account not found"})
		return
	}

	if err := h.accountService.Disconnect(claims.UserID, accountID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Account disconnected successfully"})
}
