package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/chris/ewallet-ledger/pkg/api"
	"github.com/chris/ewallet-ledger/pkg/coordinator"
	"github.com/chris/ewallet-ledger/pkg/mapping"
	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/chris/ewallet-ledger/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store       storage.Storage
	Coordinator *coordinator.Coordinator
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.Storage, coord *coordinator.Coordinator) *AccountsHandler {
	return &AccountsHandler{Store: store, Coordinator: coord}
}

// CreateAccount handles signup: it persists a new account with the creation
// defaults and runs the signup-bonus operation so the initial balance shows
// up as the first history entry.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var newAccount api.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&newAccount); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	handle := strings.TrimSpace(newAccount.Handle)
	if handle == "" {
		http.Error(w, "Handle is required", http.StatusBadRequest)
		return
	}

	account, err := h.Store.CreateAccount(r.Context(), models.NewAccount(handle, newAccount.DisplayName))
	if err != nil {
		if errors.Is(err, storage.ErrHandleTaken) {
			http.Error(w, "Account handle already taken", http.StatusConflict)
		} else {
			http.Error(w, fmt.Sprintf("Failed to create account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	if account, err = h.Coordinator.SignupBonus(r.Context(), account.Id); err != nil {
		http.Error(w, fmt.Sprintf("Failed to record signup bonus: %v", err), http.StatusInternalServerError)
		return
	}

	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// GetAccount handles the logic for retrieving an account.
func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	account, err := h.Store.GetAccount(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to retrieve account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// UpdateAccount handles editing the mutable profile fields. Only the display
// name can change; handle and balances are untouchable through this route.
func (h *AccountsHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var update api.AccountUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	displayName := strings.TrimSpace(update.DisplayName)
	if displayName == "" {
		http.Error(w, "Display name is required", http.StatusBadRequest)
		return
	}

	account, err := h.Coordinator.UpdateDisplayName(r.Context(), accountID, displayName)
	if err != nil {
		if errors.Is(err, coordinator.ErrAccountNotFound) {
			http.Error(w, "Account not found", http.StatusNotFound)
		} else {
			http.Error(w, fmt.Sprintf("Failed to update account: %v", err), http.StatusInternalServerError)
		}
		return
	}

	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// ListTransactions handles the logic for retrieving an account's history,
// newest first.
func (h *AccountsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	records, err := h.Store.ListRecords(r.Context(), accountID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to retrieve transactions: %v", err), http.StatusInternalServerError)
		return
	}

	// Sort records by timestamp in descending order for display.
	sort.Slice(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})

	apiRecords := make([]*api.TransactionRecord, len(records))
	for i, record := range records {
		apiRecords[i] = mapping.ToApiRecord(&record)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiRecords); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}
