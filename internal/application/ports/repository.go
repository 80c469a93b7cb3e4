package ports

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
)

// UserRepository defines persistence for users. Lookups return (nil, nil) when
// no user matches. The plain accessors use the default projection, which
// excludes otp_hash, otp_expires_at and refresh_token; the WithSecrets
// variants request them explicitly.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	GetByIDWithSecrets(ctx context.Context, id bson.ObjectID) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
	DeleteByEmail(ctx context.Context, email string) error
	ClearRefreshToken(ctx context.Context, id bson.ObjectID) error
}

// TaskRepository defines persistence for tasks.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	GetByID(ctx context.Context, id bson.ObjectID) (*domain.Task, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]*domain.Task, error)
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id bson.ObjectID) error
}
