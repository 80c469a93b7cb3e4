package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

// SMTPSender delivers verification codes over SMTP via gomail. gomail dials
// with its own 10s connection timeout; the sender adds an overall deadline so
// a provider that accepts the connection and then stalls cannot hold a
// request open indefinitely.
type SMTPSender struct {
	dialer  *gomail.Dialer
	from    string
	timeout time.Duration
}

func NewSMTPSender(host string, port int, username, password, from string, timeout time.Duration) *SMTPSender {
	return &SMTPSender{
		dialer:  gomail.NewDialer(host, port, username, password),
		from:    from,
		timeout: timeout,
	}
}

func (s *SMTPSender) SendVerificationCode(ctx context.Context, email, code, name string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Verify Your Email - Task Manager")
	msg.SetBody("text/plain", verificationText(name, code))
	msg.AddAlternative("text/html", verificationHTML(name, code))

	errc := make(chan error, 1)
	go func() {
		errc <- s.dialer.DialAndSend(msg)
	}()
	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-time.After(s.timeout):
		return fmt.Errorf("smtp send timed out after %s", s.timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ ports.EmailSender = (*SMTPSender)(nil)
