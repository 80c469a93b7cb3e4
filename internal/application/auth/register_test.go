package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

func TestRegisterCreatesUnverifiedUser(t *testing.T) {
	repo := newMemUserRepo()
	enq := &recordEnqueuer{}
	uc := NewRegister(repo, fakeHasher{}, enq)

	result, err := uc.Execute(context.Background(), RegisterInput{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.False(t, result.User.ID.IsZero())

	stored, err := repo.GetByEmailWithSecrets(context.Background(), "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsVerified)
	assert.Equal(t, "hashed:hunter2!", stored.PasswordHash)
	assert.NotEmpty(t, stored.OTPHash)
	assert.NotNil(t, stored.OTPExpiresAt)

	sent, ok := enq.last()
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", sent.Email)
	assert.Equal(t, "Ada", sent.Name)
	assert.Equal(t, HashOTP(sent.Code), stored.OTPHash, "delivered code must match stored digest")
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	uc := NewRegister(newMemUserRepo(), fakeHasher{}, &recordEnqueuer{})
	_, err := uc.Execute(context.Background(), RegisterInput{
		Name: "Ada", Email: "not-an-email", Password: "hunter2!",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidEmail)
}

func TestRegisterRejectsVerifiedDuplicate(t *testing.T) {
	repo := newMemUserRepo()
	require.NoError(t, repo.Create(context.Background(), &domain.User{
		Name: "Ada", Email: "ada@example.com", IsVerified: true,
	}))

	uc := NewRegister(repo, fakeHasher{}, &recordEnqueuer{})
	_, err := uc.Execute(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2!",
	})
	assert.ErrorIs(t, err, domerrors.ErrUserExists)
}

func TestRegisterReplacesUnverifiedDuplicate(t *testing.T) {
	repo := newMemUserRepo()
	enq := &recordEnqueuer{}
	uc := NewRegister(repo, fakeHasher{}, enq)

	first, err := uc.Execute(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "first-pass",
	})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "second-pass",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.User.ID, second.User.ID)
	assert.Equal(t, 1, repo.count())

	stored, err := repo.GetByEmailWithSecrets(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hashed:second-pass", stored.PasswordHash)
}

func TestRegisterSucceedsWhenDeliveryFails(t *testing.T) {
	repo := newMemUserRepo()
	enq := &recordEnqueuer{err: assert.AnError}
	uc := NewRegister(repo, fakeHasher{}, enq)

	_, err := uc.Execute(context.Background(), RegisterInput{
		Name: "Ada", Email: "ada@example.com", Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.count())
}
