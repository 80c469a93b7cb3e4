package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/amirhosseinghanipour/taskdeck/internal/domain"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
)

// OTPTTL is how long an issued code stays valid.
const OTPTTL = 10 * time.Minute

var otpRange = big.NewInt(900000)

// GenerateOTP returns a uniformly random 6-digit code in [100000, 999999],
// drawn from crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, otpRange)
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}

// HashOTP returns the SHA-256 hex digest of a code. Only digests are
// persisted; the raw code exists solely on the delivery path.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// issueOTP stamps fresh OTP material onto the user and returns the plaintext
// code for out-of-band delivery.
func issueOTP(user *domain.User) (string, error) {
	code, err := GenerateOTP()
	if err != nil {
		return "", err
	}
	expires := time.Now().Add(OTPTTL)
	user.OTPHash = HashOTP(code)
	user.OTPExpiresAt = &expires
	return code, nil
}

// checkOTP validates a supplied code against the user's stored material.
// Expiry is checked strictly before equality so a stale code always reports
// expired. On success the OTP fields are cleared.
func checkOTP(user *domain.User, supplied string) error {
	if user.OTPHash == "" || user.OTPExpiresAt == nil {
		return domerrors.ErrOTPNotFound
	}
	if !time.Now().Before(*user.OTPExpiresAt) {
		return domerrors.ErrOTPExpired
	}
	if HashOTP(supplied) != user.OTPHash {
		return domerrors.ErrOTPMismatch
	}
	user.ClearOTP()
	return nil
}
