package user

import (
	"context"

	"lending/core"

	"github.com/fox-one/mixin-sdk-go"
)

type userService struct{}

// New new user service
func New() core.IUserService {
	return &userService{}
}

// Login resolve the mixin profile owning the token
func (s *userService) Login(ctx context.Context, token string) (*core.User, error) {
	profile, err := mixin.UserMe(ctx, token)
	if err != nil {
		return nil, err
	}

	user := core.User{
		UserID:      profile.UserID,
		Name:        profile.FullName,
		AccessToken: token,
	}

	return &user, nil
}
