package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

// verifiedAccount registers and verifies a user, returning the repo and
// issuer shared by the follow-up usecases.
func verifiedAccount(t *testing.T) (*memUserRepo, *fakeIssuer) {
	t.Helper()
	repo := newMemUserRepo()
	code := registerPending(t, repo)
	issuer := &fakeIssuer{}
	_, err := NewVerifyOTP(repo, issuer).Execute(context.Background(), VerifyOTPInput{
		Email: "ada@example.com", Code: code,
	})
	require.NoError(t, err)
	return repo, issuer
}

func TestLoginIssuesTokens(t *testing.T) {
	repo, issuer := verifiedAccount(t)
	uc := NewLogin(repo, fakeHasher{}, issuer)

	result, err := uc.Execute(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "hunter2!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, "ada@example.com", result.User.Email)

	stored, err := repo.GetByEmailWithSecrets(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, result.RefreshToken, stored.RefreshToken)
}

func TestLoginWrongPassword(t *testing.T) {
	repo, issuer := verifiedAccount(t)
	uc := NewLogin(repo, fakeHasher{}, issuer)

	_, err := uc.Execute(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, err, domerrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	repo, issuer := verifiedAccount(t)
	uc := NewLogin(repo, fakeHasher{}, issuer)

	_, unknownErr := uc.Execute(context.Background(), LoginInput{
		Email: "ghost@example.com", Password: "hunter2!",
	})
	_, wrongErr := uc.Execute(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "wrong",
	})
	assert.ErrorIs(t, unknownErr, domerrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongErr, "unknown email and wrong password must be indistinguishable")
}

func TestLoginUnverifiedUser(t *testing.T) {
	repo := newMemUserRepo()
	registerPending(t, repo)

	uc := NewLogin(repo, fakeHasher{}, &fakeIssuer{})
	_, err := uc.Execute(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "hunter2!",
	})
	assert.ErrorIs(t, err, domerrors.ErrEmailNotVerified)
}

func TestLoginRotationInvalidatesOldRefreshToken(t *testing.T) {
	repo, issuer := verifiedAccount(t)
	login := NewLogin(repo, fakeHasher{}, issuer)
	refresh := NewRefresh(repo, issuer)

	first, err := login.Execute(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "hunter2!",
	})
	require.NoError(t, err)
	second, err := login.Execute(context.Background(), LoginInput{
		Email: "ada@example.com", Password: "hunter2!",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = refresh.Execute(context.Background(), RefreshInput{RefreshToken: first.RefreshToken})
	assert.ErrorIs(t, err, domerrors.ErrRefreshMismatch)

	_, err = refresh.Execute(context.Background(), RefreshInput{RefreshToken: second.RefreshToken})
	assert.NoError(t, err)
}
