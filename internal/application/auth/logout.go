package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

type LogoutInput struct {
	UserID string
}

type LogoutResult struct{}

// Logout clears the stored refresh token. Idempotent: logging out twice, or
// with no active session, succeeds.
type Logout struct {
	users ports.UserRepository
}

func NewLogout(users ports.UserRepository) *Logout {
	return &Logout{users: users}
}

func (uc *Logout) Execute(ctx context.Context, input LogoutInput) (*LogoutResult, error) {
	oid, err := bson.ObjectIDFromHex(input.UserID)
	if err != nil {
		return &LogoutResult{}, nil
	}
	if err := uc.users.ClearRefreshToken(ctx, oid); err != nil {
		return nil, err
	}
	return &LogoutResult{}, nil
}
