package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

// InlineEnqueuer is the no-Redis fallback: delivery runs in a detached
// goroutine with its own deadline, decoupled from the request lifecycle. The
// caller never awaits or cancels it; the outcome is only logged.
type InlineEnqueuer struct {
	sender  ports.EmailSender
	timeout time.Duration
	log     zerolog.Logger
}

func NewInlineEnqueuer(sender ports.EmailSender, timeout time.Duration, log zerolog.Logger) *InlineEnqueuer {
	return &InlineEnqueuer{sender: sender, timeout: timeout, log: log}
}

func (q *InlineEnqueuer) EnqueueSendVerificationCode(_ context.Context, email, code, name string) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		defer cancel()
		if err := q.sender.SendVerificationCode(ctx, email, code, name); err != nil {
			q.log.Warn().Err(err).Str("email", email).Msg("verification code delivery failed")
			return
		}
		q.log.Info().Str("email", email).Msg("verification code delivered")
	}()
	return nil
}

var _ ports.TaskEnqueuer = (*InlineEnqueuer)(nil)
