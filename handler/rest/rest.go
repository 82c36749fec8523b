package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/auth"
	"lending/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(banks core.IBankStore, transactions core.TransactionStore, ledgerz core.ILedgerService) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/banks", banksHandler(banks))

	router.Group(func(r chi.Router) {
		r.Use(auth.LoginRequired)
		r.Get("/me/positions", positionsHandler(ledgerz))
		r.Get("/me/transactions", transactionsHandler(transactions))
		r.Post("/withdraw", withdrawHandler(ledgerz))
	})

	return router
}
