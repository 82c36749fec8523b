package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"lending/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	for _, c := range []struct {
		err    error
		status int
		code   string
	}{
		{core.ErrInsufficientFunds, http.StatusBadRequest, "100102"},
		{core.ErrBankNotFound, http.StatusNotFound, "100100"},
		{core.ErrPoolEmpty, http.StatusPreconditionFailed, "100103"},
		{fmt.Errorf("%w: timeout", core.ErrTransferFailed), http.StatusServiceUnavailable, "100107"},
		{core.ErrArithmeticOverflow, http.StatusInternalServerError, "100104"},
		{errors.New("boom"), http.StatusInternalServerError, ""},
	} {
		twerr := From(c.err)
		assert.Equal(t, c.status, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()), c.err.Error())
		assert.Equal(t, c.code, twerr.Meta(CustomCodeKey), c.err.Error())
	}

	twerr := twirp.NotFoundError("gone")
	assert.Equal(t, twerr, From(twerr))
}

func TestGet(t *testing.T) {
	assert.Equal(t, InvalidArguments, Get(twirp.InvalidArgument))
	assert.Equal(t, http.StatusNotFound, Get(twirp.NotFound))
}
