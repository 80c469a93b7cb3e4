package auth

import (
	"context"
	"time"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

type ResendOTPInput struct {
	Email string
}

type ResendOTPResult struct{}

// ResendOTP overwrites the pending account's OTP material and resends it.
// Unlike registration, delivery is awaited: the user is sitting on the
// verification screen waiting for this code, so a failure surfaces.
type ResendOTP struct {
	users  ports.UserRepository
	sender ports.EmailSender
}

func NewResendOTP(users ports.UserRepository, sender ports.EmailSender) *ResendOTP {
	return &ResendOTP{users: users, sender: sender}
}

func (uc *ResendOTP) Execute(ctx context.Context, input ResendOTPInput) (*ResendOTPResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	if user.IsVerified {
		return nil, domerrors.ErrAlreadyVerified
	}

	code, err := issueOTP(user)
	if err != nil {
		return nil, err
	}
	user.UpdatedAt = time.Now()
	if err := uc.users.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.sender.SendVerificationCode(ctx, user.Email, code, user.Name); err != nil {
		return nil, domerrors.ErrEmailDelivery
	}
	return &ResendOTPResult{}, nil
}
