package email

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSender struct {
	err   error
	calls int
}

func (s *stubSender) SendVerificationCode(context.Context, string, string, string) error {
	s.calls++
	return s.err
}

func TestChainStopsAtFirstSuccess(t *testing.T) {
	first := &stubSender{}
	second := &stubSender{}
	chain := NewChain(zerolog.Nop(), first, second)

	err := chain.SendVerificationCode(context.Background(), "a@example.com", "123456", "Ada")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "fallback must not run when the primary succeeds")
}

func TestChainFallsThroughOnFailure(t *testing.T) {
	first := &stubSender{err: errors.New("smtp down")}
	second := &stubSender{}
	chain := NewChain(zerolog.Nop(), first, second)

	err := chain.SendVerificationCode(context.Background(), "a@example.com", "123456", "Ada")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestChainReturnsLastErrorWhenAllFail(t *testing.T) {
	first := &stubSender{err: errors.New("primary down")}
	lastErr := errors.New("fallback down")
	second := &stubSender{err: lastErr}
	chain := NewChain(zerolog.Nop(), first, second)

	err := chain.SendVerificationCode(context.Background(), "a@example.com", "123456", "Ada")
	assert.ErrorIs(t, err, lastErr)
}

func TestChainEmpty(t *testing.T) {
	chain := NewChain(zerolog.Nop())
	err := chain.SendVerificationCode(context.Background(), "a@example.com", "123456", "Ada")
	assert.Error(t, err)
}

func TestLogSenderNeverFails(t *testing.T) {
	s := NewLogSender(zerolog.Nop())
	assert.NoError(t, s.SendVerificationCode(context.Background(), "a@example.com", "123456", "Ada"))
}
