package core

import (
	"context"
)

// Session resolves Mixin access tokens to depositors
type Session interface {
	// Login returns the depositor the token was issued to, with its stored
	// positions once it has deposited. Expired tokens and foreign issuers fail.
	Login(ctx context.Context, accessToken string) (*User, error)
}
