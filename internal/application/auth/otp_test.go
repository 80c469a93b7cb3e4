package auth

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

func TestGenerateOTPRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestHashOTPDeterministic(t *testing.T) {
	assert.Equal(t, HashOTP("123456"), HashOTP("123456"))
	assert.NotEqual(t, HashOTP("123456"), HashOTP("123457"))
	assert.Len(t, HashOTP("123456"), 64)
}

func TestIssueOTPStampsUser(t *testing.T) {
	u := &domain.User{}
	code, err := issueOTP(u)
	require.NoError(t, err)
	assert.Equal(t, HashOTP(code), u.OTPHash)
	require.NotNil(t, u.OTPExpiresAt)
	assert.WithinDuration(t, time.Now().Add(OTPTTL), *u.OTPExpiresAt, 5*time.Second)
}

func TestCheckOTP(t *testing.T) {
	t.Run("no material", func(t *testing.T) {
		err := checkOTP(&domain.User{}, "123456")
		assert.ErrorIs(t, err, domerrors.ErrOTPNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		u := &domain.User{OTPHash: HashOTP("123456"), OTPExpiresAt: &past}
		err := checkOTP(u, "123456")
		assert.ErrorIs(t, err, domerrors.ErrOTPExpired)
	})

	t.Run("mismatch", func(t *testing.T) {
		future := time.Now().Add(time.Minute)
		u := &domain.User{OTPHash: HashOTP("123456"), OTPExpiresAt: &future}
		err := checkOTP(u, "654321")
		assert.ErrorIs(t, err, domerrors.ErrOTPMismatch)
		assert.NotEmpty(t, u.OTPHash, "failed check must not consume the code")
	})

	t.Run("success clears material", func(t *testing.T) {
		future := time.Now().Add(time.Minute)
		u := &domain.User{OTPHash: HashOTP("123456"), OTPExpiresAt: &future}
		require.NoError(t, checkOTP(u, "123456"))
		assert.Empty(t, u.OTPHash)
		assert.Nil(t, u.OTPExpiresAt)
	})
}
