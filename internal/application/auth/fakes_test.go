package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

// memUserRepo mirrors the store's contract: lookups return (nil, nil) on
// miss, the default projection strips secret fields, Save never clears a
// stored refresh token with an empty one, and duplicate emails are rejected.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by email
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func stripSecrets(u *domain.User) *domain.User {
	c := *u
	c.OTPHash = ""
	c.OTPExpiresAt = nil
	c.RefreshToken = ""
	return &c
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return domerrors.ErrUserExists
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	c := *user
	r.users[user.Email] = &c
	return nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return stripSecrets(u), nil
}

func (r *memUserRepo) GetByEmailWithSecrets(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id bson.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return stripSecrets(u), nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) GetByIDWithSecrets(_ context.Context, id bson.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Save(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.Email]
	if !ok {
		return domerrors.ErrUserNotFound
	}
	stored.Name = user.Name
	stored.Bio = user.Bio
	stored.Avatar = user.Avatar
	stored.PasswordHash = user.PasswordHash
	stored.IsVerified = user.IsVerified
	stored.UpdatedAt = user.UpdatedAt
	stored.OTPHash = user.OTPHash
	stored.OTPExpiresAt = user.OTPExpiresAt
	if user.RefreshToken != "" {
		stored.RefreshToken = user.RefreshToken
	}
	return nil
}

func (r *memUserRepo) DeleteByEmail(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, email)
	return nil
}

func (r *memUserRepo) ClearRefreshToken(_ context.Context, id bson.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			u.RefreshToken = ""
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// fakeHasher keeps usecase tests fast; the real bcrypt implementation has its
// own tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (fakeHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

// fakeIssuer mints self-describing tokens, unique per call so rotation is
// observable.
type fakeIssuer struct {
	mu  sync.Mutex
	seq int
}

func (f *fakeIssuer) next(kind, userID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("%s.%s.%d", kind, userID, f.seq)
}

func (f *fakeIssuer) IssueAccessToken(userID string) (string, error) {
	return f.next("access", userID), nil
}

func (f *fakeIssuer) IssueRefreshToken(userID string) (string, error) {
	return f.next("refresh", userID), nil
}

func (f *fakeIssuer) Verify(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || (parts[0] != "access" && parts[0] != "refresh") {
		return "", errors.New("invalid token")
	}
	return parts[1], nil
}

type sentCode struct {
	Email string
	Code  string
	Name  string
}

// recordEnqueuer captures fire-and-forget deliveries.
type recordEnqueuer struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (e *recordEnqueuer) EnqueueSendVerificationCode(_ context.Context, email, code, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.sent = append(e.sent, sentCode{Email: email, Code: code, Name: name})
	return nil
}

func (e *recordEnqueuer) last() (sentCode, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.sent) == 0 {
		return sentCode{}, false
	}
	return e.sent[len(e.sent)-1], true
}

// recordSender captures awaited deliveries.
type recordSender struct {
	mu   sync.Mutex
	sent []sentCode
	err  error
}

func (s *recordSender) SendVerificationCode(_ context.Context, email, code, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentCode{Email: email, Code: code, Name: name})
	return nil
}

func (s *recordSender) last() (sentCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return sentCode{}, false
	}
	return s.sent[len(s.sent)-1], true
}
