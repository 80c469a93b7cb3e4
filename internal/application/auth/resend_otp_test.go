package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

func TestResendOTPReplacesCode(t *testing.T) {
	repo := newMemUserRepo()
	firstCode := registerPending(t, repo)

	sender := &recordSender{}
	_, err := NewResendOTP(repo, sender).Execute(context.Background(), ResendOTPInput{
		Email: "ada@example.com",
	})
	require.NoError(t, err)

	sent, ok := sender.last()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", sent.Email)

	stored, err := repo.GetByEmailWithSecrets(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, HashOTP(sent.Code), stored.OTPHash)
	if sent.Code != firstCode {
		assert.NotEqual(t, HashOTP(firstCode), stored.OTPHash, "old code must stop working")
	}
}

func TestResendOTPUnknownUser(t *testing.T) {
	_, err := NewResendOTP(newMemUserRepo(), &recordSender{}).Execute(context.Background(), ResendOTPInput{
		Email: "ghost@example.com",
	})
	assert.ErrorIs(t, err, domerrors.ErrUserNotFound)
}

func TestResendOTPAlreadyVerified(t *testing.T) {
	repo, _ := verifiedAccount(t)
	_, err := NewResendOTP(repo, &recordSender{}).Execute(context.Background(), ResendOTPInput{
		Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, domerrors.ErrAlreadyVerified)
}

func TestResendOTPSurfacesDeliveryFailure(t *testing.T) {
	repo := newMemUserRepo()
	registerPending(t, repo)

	sender := &recordSender{err: assert.AnError}
	_, err := NewResendOTP(repo, sender).Execute(context.Background(), ResendOTPInput{
		Email: "ada@example.com",
	})
	assert.ErrorIs(t, err, domerrors.ErrEmailDelivery)
}
