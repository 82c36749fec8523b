package request

import (
	"context"

	"lending/core"
)

type key int

const (
	userKey key = iota
)

// ContextX carries the depositor resolved by the auth middleware
type ContextX struct {
	context.Context
}

func NewContext(ctx context.Context) ContextX {
	return ContextX{
		Context: ctx,
	}
}

// WithUser attaches the depositor owning the request's access token
func (c ContextX) WithUser(user *core.User) context.Context {
	return context.WithValue(c, userKey, user)
}

// GetUser returns the depositor, false on unauthenticated requests
func (c ContextX) GetUser() (*core.User, bool) {
	user, ok := c.Value(userKey).(*core.User)
	return user, ok && user != nil
}
