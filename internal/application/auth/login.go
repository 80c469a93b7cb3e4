package auth

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// Login authenticates a verified user and rotates the stored refresh token:
// the newly issued token overwrites the previous one, which stops passing
// refresh from that point on.
type Login struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Login {
	return &Login{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password share one error to avoid account
	// enumeration.
	if user == nil {
		return nil, domerrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, domerrors.ErrEmailNotVerified
	}
	if !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}

	accessToken, err := uc.issuer.IssueAccessToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.issuer.IssueRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	user.RefreshToken = refreshToken
	user.UpdatedAt = time.Now()
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
