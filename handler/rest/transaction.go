package rest

import (
	"net/http"
	"time"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/request"

	"github.com/spf13/cast"
)

// response user transactions
func transactionsHandler(transactionStr core.TransactionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, _ := request.NewContext(ctx).GetUser()

		var params struct {
			Offset string `json:"offset"`
			Limit  string `json:"limit"`
		}

		if e := param.Binding(r, &params); e != nil {
			render.Error(w, e)
			return
		}

		limit := cast.ToInt(params.Limit)
		if limit <= 0 || limit > 500 {
			limit = 500
		}

		offsetTime, err := cast.ToTimeE(params.Offset)
		if err != nil {
			offsetTime = time.Time{}
		}

		transactions, e := transactionStr.List(ctx, user.UserID, offsetTime, limit)
		if e != nil {
			render.Error(w, e)
			return
		}

		render.JSON(w, transactions)
	}
}
