package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

const TypeSendVerificationCode = "email:verification_code"

type verificationCodePayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
	Name  string `json:"name"`
}

// TaskEnqueuer schedules verification-code emails on Asynq when Redis is
// configured.
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueSendVerificationCode(ctx context.Context, email, code, name string) error {
	payload, _ := json.Marshal(verificationCodePayload{Email: email, Code: code, Name: name})
	task := asynq.NewTask(TypeSendVerificationCode, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("email", email).Msg("enqueue verification code email failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
