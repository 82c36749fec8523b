package rest

import (
	"errors"
	"net/http"

	"lending/core"
	"lending/handler/render"
	"lending/handler/request"
	"lending/handler/views"
)

func positionsHandler(ledgerz core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user, _ := request.NewContext(ctx).GetUser()

		positions := make([]*views.Position, 0, len(core.Assets()))
		for _, asset := range core.Assets() {
			position, bank, err := ledgerz.Preview(ctx, user.UserID, asset)
			if errors.Is(err, core.ErrBankNotFound) {
				continue
			}

			if err != nil {
				render.Error(w, err)
				return
			}

			positions = append(positions, views.PositionView(position, bank))
		}

		render.JSON(w, positions)
	}
}
