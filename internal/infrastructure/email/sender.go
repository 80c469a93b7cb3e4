package email

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

// Chain tries each sender in rank order until one succeeds. All-fail returns
// the last error.
type Chain struct {
	senders []ports.EmailSender
	log     zerolog.Logger
}

func NewChain(log zerolog.Logger, senders ...ports.EmailSender) *Chain {
	return &Chain{senders: senders, log: log}
}

func (c *Chain) SendVerificationCode(ctx context.Context, email, code, name string) error {
	if len(c.senders) == 0 {
		return errors.New("no email senders configured")
	}
	var lastErr error
	for i, s := range c.senders {
		if lastErr = s.SendVerificationCode(ctx, email, code, name); lastErr == nil {
			return nil
		}
		c.log.Warn().Err(lastErr).Int("rank", i).Str("email", email).Msg("email sender failed, trying next")
	}
	return lastErr
}

var _ ports.EmailSender = (*Chain)(nil)
