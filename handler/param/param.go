package param

import (
	"encoding/json"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/gorilla/schema"
	"github.com/twitchtv/twirp"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.SetAliasTag("json")
	decoder.IgnoreUnknownKeys(true)
}

// Binding decode the query of GET requests and the json body of the others into v,
// then validate it by the valid tags
func Binding(r *http.Request, v interface{}) error {
	if r.Method == http.MethodGet {
		if err := decoder.Decode(v, r.URL.Query()); err != nil {
			return twirp.NewError(twirp.InvalidArgument, err.Error())
		}
	} else if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return twirp.NewError(twirp.Malformed, err.Error())
	}

	if _, err := govalidator.ValidateStruct(v); err != nil {
		return twirp.NewError(twirp.InvalidArgument, err.Error())
	}

	return nil
}
