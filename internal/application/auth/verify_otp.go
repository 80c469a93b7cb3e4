package auth

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type VerifyOTPInput struct {
	Email string
	Code  string
}

type VerifyOTPResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

// VerifyOTP promotes a pending account to verified, clears the OTP material
// permanently and issues the first token pair.
type VerifyOTP struct {
	users  ports.UserRepository
	issuer ports.TokenIssuer
}

func NewVerifyOTP(users ports.UserRepository, issuer ports.TokenIssuer) *VerifyOTP {
	return &VerifyOTP{users: users, issuer: issuer}
}

func (uc *VerifyOTP) Execute(ctx context.Context, input VerifyOTPInput) (*VerifyOTPResult, error) {
	user, err := uc.users.GetByEmailWithSecrets(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if user.IsVerified {
		return nil, domerrors.ErrAlreadyVerified
	}
	if err := checkOTP(user, input.Code); err != nil {
		return nil, err
	}

	accessToken, err := uc.issuer.IssueAccessToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}
	refreshToken, err := uc.issuer.IssueRefreshToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.RefreshToken = refreshToken
	user.UpdatedAt = time.Now()
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return &VerifyOTPResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
