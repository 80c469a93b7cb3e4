package mongo

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

const userCollection = "users"

// secretFields are excluded from default read projections. Callers that need
// them must use the WithSecrets accessors.
var secretFields = bson.M{
	"otp_hash":       0,
	"otp_expires_at": 0,
	"refresh_token":  0,
}

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserRepository creates the repository and ensures the unique email
// index. The index makes the losing writer of a concurrent registration race
// fail with a duplicate-key error instead of producing two records.
func NewUserRepository(ctx context.Context, log zerolog.Logger, db *mongo.Database) ports.UserRepository {
	_, err := db.Collection(userCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create user email index")
	}
	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) Create(ctx context.Context, user *domain.User) error {
	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domerrors.ErrUserExists
		}
		return err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = oid
	} else {
		return errors.New("inserted ID is not an ObjectID")
	}
	return nil
}

func (r *userMongoRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, false)
}

func (r *userMongoRepository) GetByEmailWithSecrets(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, true)
}

func (r *userMongoRepository) GetByID(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, false)
}

func (r *userMongoRepository) GetByIDWithSecrets(ctx context.Context, id bson.ObjectID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, true)
}

func (r *userMongoRepository) findOne(ctx context.Context, filter bson.M, withSecrets bool) (*domain.User, error) {
	opts := options.FindOne()
	if !withSecrets {
		opts.SetProjection(secretFields)
	}
	result := r.db.Collection(userCollection).FindOne(ctx, filter, opts)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	var user domain.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Save persists mutations. OTP material is set or unset to mirror the
// in-memory state; refresh_token is only written when non-empty (clearing it
// goes through ClearRefreshToken), so saving a snapshot loaded without
// secrets never wipes an active session.
func (r *userMongoRepository) Save(ctx context.Context, user *domain.User) error {
	set := bson.M{
		"name":          user.Name,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"is_verified":   user.IsVerified,
		"bio":           user.Bio,
		"avatar":        user.Avatar,
		"updated_at":    time.Now(),
	}
	unset := bson.M{}
	if user.OTPHash != "" && user.OTPExpiresAt != nil {
		set["otp_hash"] = user.OTPHash
		set["otp_expires_at"] = *user.OTPExpiresAt
	} else {
		unset["otp_hash"] = ""
		unset["otp_expires_at"] = ""
	}
	if user.RefreshToken != "" {
		set["refresh_token"] = user.RefreshToken
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	result, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

func (r *userMongoRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.Collection(userCollection).DeleteOne(ctx, bson.M{"email": email})
	return err
}

func (r *userMongoRepository) ClearRefreshToken(ctx context.Context, id bson.ObjectID) error {
	_, err := r.db.Collection(userCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$unset": bson.M{"refresh_token": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	})
	return err
}
