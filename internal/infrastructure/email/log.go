package email

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

// LogSender logs the code instead of sending it. Development fallback at the
// end of the chain; never fails.
type LogSender struct {
	log zerolog.Logger
}

func NewLogSender(log zerolog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendVerificationCode(ctx context.Context, email, code, name string) error {
	s.log.Info().
		Str("email", email).
		Str("name", name).
		Str("code", code).
		Msg("verification code (log only; configure SMTP for real email)")
	return nil
}

var _ ports.EmailSender = (*LogSender)(nil)
