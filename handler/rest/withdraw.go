package rest

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"
	"lending/handler/request"

	"github.com/fox-one/pkg/logger"
)

func withdrawHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, _ := request.NewContext(ctx).GetUser()

		var body struct {
			TraceID string `json:"trace_id" valid:"uuid,required"`
			AssetID string `json:"asset_id" valid:"uuid,required"`
			Amount  uint64 `json:"amount"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		transaction, err := ledgerz.Withdraw(ctx, &core.Withdraw{
			TraceID: body.TraceID,
			UserID:  user.UserID,
			AssetID: body.AssetID,
			Amount:  body.Amount,
		})
		if err != nil {
			logger.FromContext(ctx).WithError(err).Infoln("withdraw", body.TraceID)
			render.Error(w, err)
			return
		}

		render.JSON(w, transaction)
	}
}
