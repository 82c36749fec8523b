package render

import (
	"encoding/json"
	"net/http"
	"strconv"

	"lending/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	if err := enc.Encode(H{"data": v}); err != nil {
		logrus.Errorln(err)
	}
}

// Error write error, the http status follows the twirp code of err
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)

	code, _ := strconv.Atoi(twerr.Meta(codes.CustomCodeKey))
	if code == 0 {
		code = codes.Get(twerr.Code())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(twirp.ServerHTTPStatusFromErrorCode(twerr.Code()))

	enc := json.NewEncoder(w)
	if err := enc.Encode(H{"code": code, "msg": twerr.Msg()}); err != nil {
		logrus.Errorln(err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, codes.With(twirp.NewError(twirp.InvalidArgument, err.Error()), codes.InvalidArguments))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}
