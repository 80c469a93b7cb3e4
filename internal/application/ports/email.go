package ports

import "context"

// EmailSender delivers a verification code out of band. Implementations carry
// their own connection/send timeouts so a hung provider cannot stall a request.
type EmailSender interface {
	SendVerificationCode(ctx context.Context, email, code, name string) error
}

// TaskEnqueuer schedules verification-code delivery detached from the HTTP
// request. Enqueue failures are logged by the implementation; registration
// never fails because of a slow or broken mail provider.
type TaskEnqueuer interface {
	EnqueueSendVerificationCode(ctx context.Context, email, code, name string) error
}
