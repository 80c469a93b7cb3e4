package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterResult struct {
	User *domain.User
}

// Register creates an unverified user, issues an OTP and enqueues its
// delivery. A verified account with the same email blocks registration; an
// unverified one is deleted and replaced, so at most one live record exists
// per email.
type Register struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	enqueuer ports.TaskEnqueuer
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher, enqueuer ports.TaskEnqueuer) *Register {
	return &Register{users: users, hasher: hasher, enqueuer: enqueuer}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	if !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidEmail
	}
	existing, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsVerified {
			return nil, domerrors.ErrUserExists
		}
		// Unverified leftover from an abandoned signup: replace it.
		if err := uc.users.DeleteByEmail(ctx, input.Email); err != nil {
			return nil, err
		}
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	code, err := issueOTP(user)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Fire and forget: the account exists regardless of whether the email
	// makes it out. Failures are logged by the enqueuer.
	_ = uc.enqueuer.EnqueueSendVerificationCode(ctx, user.Email, code, user.Name)

	return &RegisterResult{User: user}, nil
}
