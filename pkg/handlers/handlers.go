// Package handlers wires the HTTP presentation layer. Handlers decode
// payloads, call the coordinator or store, classify the fixed error taxonomy
// into status codes, and encode responses. No ledger rule lives here.
package handlers

import (
	"github.com/chris/ewallet-ledger/pkg/handlers/accounts"
	"github.com/chris/ewallet-ledger/pkg/handlers/operations"
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every route of the service on a fresh chi router.
func NewRouter(a *accounts.AccountsHandler, o *operations.OperationsHandler) chi.Router {
	router := chi.NewRouter()

	router.Route("/accounts", func(r chi.Router) {
		r.Post("/", a.CreateAccount)
		r.Route("/{accountId}", func(r chi.Router) {
			r.Get("/", a.GetAccount)
			r.Patch("/", a.UpdateAccount)
			r.Get("/transactions", a.ListTransactions)
			r.Post("/loans", o.TakeLoan)
			r.Post("/repayments", o.RepayLoan)
			r.Post("/transfers", o.Transfer)
		})
	})

	return router
}
