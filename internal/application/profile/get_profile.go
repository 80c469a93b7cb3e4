package profile

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type GetProfileInput struct {
	UserID bson.ObjectID
}

type GetProfileResult struct {
	User *domain.User
}

type GetProfile struct {
	users ports.UserRepository
}

func NewGetProfile(users ports.UserRepository) *GetProfile {
	return &GetProfile{users: users}
}

func (uc *GetProfile) Execute(ctx context.Context, input GetProfileInput) (*GetProfileResult, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return &GetProfileResult{User: user}, nil
}
