package profile

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

// UpdateProfileInput carries the editable profile fields; nil leaves a field
// untouched.
type UpdateProfileInput struct {
	UserID bson.ObjectID
	Name   *string
	Bio    *string
	Avatar *string
}

type UpdateProfileResult struct {
	User *domain.User
}

type UpdateProfile struct {
	users ports.UserRepository
}

func NewUpdateProfile(users ports.UserRepository) *UpdateProfile {
	return &UpdateProfile{users: users}
}

func (uc *UpdateProfile) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileResult, error) {
	user, err := uc.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if input.Name != nil && *input.Name != "" {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return &UpdateProfileResult{User: user}, nil
}
