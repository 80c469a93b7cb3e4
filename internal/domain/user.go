package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is an account in the task manager. The secret fields (OTPHash,
// OTPExpiresAt, RefreshToken) are excluded from default read projections and
// only populated by the WithSecrets repository accessors.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	IsVerified   bool          `bson:"is_verified"`
	OTPHash      string        `bson:"otp_hash,omitempty"`
	OTPExpiresAt *time.Time    `bson:"otp_expires_at,omitempty"`
	RefreshToken string        `bson:"refresh_token,omitempty"`
	Bio          string        `bson:"bio,omitempty"`
	Avatar       string        `bson:"avatar,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

// ClearOTP removes the active OTP material. Called once verification succeeds.
func (u *User) ClearOTP() {
	u.OTPHash = ""
	u.OTPExpiresAt = nil
}
