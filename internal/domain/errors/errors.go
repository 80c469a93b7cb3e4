package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("please provide a valid email address")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("email already verified")

	ErrOTPNotFound = errors.New("no OTP found")
	ErrOTPExpired  = errors.New("OTP expired")
	ErrOTPMismatch = errors.New("invalid OTP")

	ErrInvalidToken    = errors.New("invalid or expired refresh token")
	ErrRefreshMismatch = errors.New("invalid refresh token")

	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskForbidden = errors.New("not authorized to access this task")

	ErrEmailDelivery = errors.New("failed to send verification email")
)
