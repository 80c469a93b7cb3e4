package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

// Worker runs Asynq task handlers for outbound email. Call Run() to start.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	sender ports.EmailSender
	log    zerolog.Logger
}

// NewWorker creates an Asynq server that delivers queued verification codes
// through the sender chain. Send failures return the error so Asynq retries.
func NewWorker(redisOpt asynq.RedisClientOpt, sender ports.EmailSender, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, sender: sender, log: log}
	mux.HandleFunc(TypeSendVerificationCode, w.handleSendVerificationCode)
	return w
}

func (w *Worker) handleSendVerificationCode(ctx context.Context, t *asynq.Task) error {
	var p verificationCodePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("verification code task payload invalid")
		return err
	}
	if err := w.sender.SendVerificationCode(ctx, p.Email, p.Code, p.Name); err != nil {
		w.log.Warn().Err(err).Str("email", p.Email).Msg("verification code delivery failed")
		return err
	}
	w.log.Info().Str("email", p.Email).Msg("verification code delivered")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
