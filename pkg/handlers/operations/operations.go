package operations

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/chris/ewallet-ledger/pkg/api"
	"github.com/chris/ewallet-ledger/pkg/coordinator"
	"github.com/chris/ewallet-ledger/pkg/ledger"
	"github.com/chris/ewallet-ledger/pkg/mapping"
	"github.com/chris/ewallet-ledger/pkg/models"
	"github.com/go-chi/chi/v5"
)

// OperationsHandler holds the dependencies for ledger operation handlers.
type OperationsHandler struct {
	Coordinator *coordinator.Coordinator
}

// NewOperationsHandler creates a new OperationsHandler.
func NewOperationsHandler(coord *coordinator.Coordinator) *OperationsHandler {
	return &OperationsHandler{Coordinator: coord}
}

// TakeLoan handles the logic for disbursing a loan.
func (h *OperationsHandler) TakeLoan(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var req api.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	amount, err := mapping.ToCents(req.Amount)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	account, err := h.Coordinator.TakeLoan(r.Context(), accountID, amount)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	writeAccount(w, account)
}

// RepayLoan handles the logic for repaying a loan. An omitted amount means
// repay the full outstanding debt, re-read at commit time.
func (h *OperationsHandler) RepayLoan(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var req api.RepaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var account *models.Account
	var err error
	if req.Amount == nil {
		account, err = h.Coordinator.RepayLoanInFull(r.Context(), accountID)
	} else {
		var amount int64
		if amount, err = mapping.ToCents(*req.Amount); err == nil {
			account, err = h.Coordinator.RepayLoan(r.Context(), accountID, amount)
		}
	}
	if err != nil {
		writeOperationError(w, err)
		return
	}

	writeAccount(w, account)
}

// Transfer handles the logic for a peer-to-peer transfer.
func (h *OperationsHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var req api.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	amount, err := mapping.ToCents(req.Amount)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	result, err := h.Coordinator.Transfer(r.Context(), accountID, req.RecipientHandle, amount, req.Description)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	apiResult := api.TransferResult{
		Sender:    *mapping.ToApiAccount(&result.Sender),
		Recipient: *mapping.ToApiAccount(&result.Recipient),
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiResult); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

func writeAccount(w http.ResponseWriter, account *models.Account) {
	apiAccount := mapping.ToApiAccount(account)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(apiAccount); err != nil {
		http.Error(w, fmt.Sprintf("Failed to write response: %v", err), http.StatusInternalServerError)
	}
}

// writeOperationError maps an operation failure to its HTTP status. The
// error taxonomy itself is fixed by the ledger core; this only renders it.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, mapping.ErrSubCentAmount):
		http.Error(w, "Amounts cannot be more precise than one cent", http.StatusBadRequest)
	case errors.Is(err, mapping.ErrAmountTooLarge):
		http.Error(w, "Amount is too large", http.StatusBadRequest)
	case errors.Is(err, ledger.ErrRecipientNotFound),
		errors.Is(err, coordinator.ErrAccountNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case ledger.IsRejection(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, coordinator.ErrConcurrencyExceeded):
		http.Error(w, "Too many concurrent operations, please retry", http.StatusConflict)
	case errors.Is(err, coordinator.ErrStoreUnavailable):
		http.Error(w, "Account store unavailable", http.StatusBadGateway)
	default:
		http.Error(w, fmt.Sprintf("Operation failed: %v", err), http.StatusInternalServerError)
	}
}
