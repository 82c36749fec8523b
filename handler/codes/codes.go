package codes

import (
	"errors"
	"strconv"

	"lending/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// From convert err to a twirp error, ledger error codes are kept as the custom code
func From(err error) twirp.Error {
	if twerr, ok := err.(twirp.Error); ok {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	var twerr twirp.Error
	switch code {
	case core.ErrBankNotFound:
		twerr = twirp.NotFoundError(code.Error())
	case core.ErrOperationForbidden:
		twerr = twirp.NewError(twirp.PermissionDenied, code.Error())
	case core.ErrInvalidAmount, core.ErrInsufficientFunds, core.ErrUnknownAsset:
		twerr = twirp.NewError(twirp.InvalidArgument, code.Error())
	case core.ErrPoolEmpty:
		twerr = twirp.NewError(twirp.FailedPrecondition, code.Error())
	case core.ErrTransferFailed:
		twerr = twirp.NewError(twirp.Unavailable, err.Error())
	default:
		twerr = twirp.NewError(twirp.Internal, code.Error())
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(int(code)))
}
