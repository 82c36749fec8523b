package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/views"
)

func banksHandler(banks core.IBankStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := banks.All(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		out := make([]*views.Bank, 0, len(all))
		for _, bank := range all {
			out = append(out, views.BankView(bank))
		}

		render.JSON(w, out)
	}
}
