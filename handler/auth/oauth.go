package auth

import (
	"net/http"

	"lending/core"
	"lending/handler/param"
	"lending/handler/render"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/twitchtv/twirp"
)

// HandleOauth exchange a mixin oauth code for an access token
func HandleOauth(dapp *core.Dapp) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Code string `json:"code,omitempty" valid:"minstringlength(6),required"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()

		token, scope, err := mixin.AuthorizeToken(ctx, dapp.ClientID, dapp.ClientSecret, body.Code, "")
		if err != nil {
			render.Error(w, twirp.InvalidArgumentError("code", err.Error()))
			return
		}

		render.JSON(w, render.H{"token": token, "scope": scope})
	}
}
