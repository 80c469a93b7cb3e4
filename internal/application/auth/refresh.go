package auth

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type RefreshInput struct {
	RefreshToken string
}

type RefreshResult struct {
	AccessToken string
}

// Refresh exchanges a refresh token for a new access token. The presented
// token must verify and match the stored one byte for byte; a superseded
// token is rejected even though its signature is still valid. The refresh
// token itself is not rotated on this path.
type Refresh struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

func NewRefresh(users ports.UserRepository, issuer ports.TokenIssuer) *Refresh {
	return &Refresh{users: users, issuer: issuer}
}

func (uc *Refresh) Execute(ctx context.Context, input RefreshInput) (*RefreshResult, error) {
	userID, err := uc.issuer.Verify(input.RefreshToken)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domerrors.ErrInvalidToken
	}
	user, err := uc.users.GetByIDWithSecrets(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil || user.RefreshToken != input.RefreshToken {
		return nil, domerrors.ErrRefreshMismatch
	}
	accessToken, err := uc.issuer.IssueAccessToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &RefreshResult{AccessToken: accessToken}, nil
}
