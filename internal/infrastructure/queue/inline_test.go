package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (s *blockingSender) SendVerificationCode(_ context.Context, email, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, email)
	return nil
}

func (s *blockingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func TestInlineEnqueuerDeliversDetached(t *testing.T) {
	sender := &blockingSender{}
	q := NewInlineEnqueuer(sender, time.Second, zerolog.Nop())

	err := q.EnqueueSendVerificationCode(context.Background(), "ada@example.com", "123456", "Ada")
	require.NoError(t, err)

	require.Eventually(t, func() bool { return sender.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestInlineEnqueuerSwallowsSendFailure(t *testing.T) {
	sender := &blockingSender{err: errors.New("smtp down")}
	q := NewInlineEnqueuer(sender, time.Second, zerolog.Nop())

	err := q.EnqueueSendVerificationCode(context.Background(), "ada@example.com", "123456", "Ada")
	assert.NoError(t, err, "delivery failure must not surface to the caller")
}
