package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/auth"
	domerrors "github.com/amirhosseinghanipour/taskdeck/internal/domain/errors"
	"github.com/amirhosseinghanipour/taskdeck/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register  *auth.Register
	verifyOTP *auth.VerifyOTP
	resendOTP *auth.ResendOTP
	login     *auth.Login
	refresh   *auth.Refresh
	logout    *auth.Logout
	validate  *validator.Validate
	log       zerolog.Logger
}

func NewAuthHandler(register *auth.Register, verifyOTP *auth.VerifyOTP, resendOTP *auth.ResendOTP, login *auth.Login, refresh *auth.Refresh, logout *auth.Logout, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:  register,
		verifyOTP: verifyOTP,
		resendOTP: resendOTP,
		login:     login,
		refresh:   refresh,
		logout:    logout,
		validate:  validator.New(),
		log:       log,
	}
}

func userPayload(id, name, email string) map[string]string {
	return map[string]string{"id": id, "name": name, "email": email}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	name := SanitizeName(body.Name)
	email := SanitizeEmail(body.Email)
	if name == "" || email == "" || body.Password == "" {
		writeErr(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(body.Password) < MinPasswordLength {
		writeErr(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if len(body.Password) > MaxPasswordLength {
		writeErr(w, http.StatusBadRequest, "Password is too long")
		return
	}
	if err := h.validate.Var(email, "email"); err != nil {
		writeErr(w, http.StatusBadRequest, "Please provide a valid email address")
		return
	}

	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Name:     name,
		Email:    email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "auth.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		switch {
		case errors.Is(err, domerrors.ErrUserExists):
			writeErr(w, http.StatusBadRequest, "User already exists")
		case errors.Is(err, domerrors.ErrInvalidEmail):
			writeErr(w, http.StatusBadRequest, "Please provide a valid email address")
		default:
			h.log.Error().Err(err).Msg("register failed")
			writeErr(w, http.StatusInternalServerError, "Registration failed. Please try again.")
		}
		return
	}
	AuditLog(h.log, r, "auth.register", result.User.ID.Hex(), true, "")
	middleware.RecordAuthAttempt("register", true)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Registration successful! Please check your email for the OTP.",
		"email":   result.User.Email,
		"userId":  result.User.ID.Hex(),
	})
}

func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" || body.OTP == "" {
		writeErr(w, http.StatusBadRequest, "Email and OTP are required")
		return
	}

	result, err := h.verifyOTP.Execute(r.Context(), auth.VerifyOTPInput{Email: email, Code: body.OTP})
	if err != nil {
		AuditLog(h.log, r, "auth.verify_otp", "", false, err.Error())
		middleware.RecordAuthAttempt("verify_otp", false)
		switch {
		case errors.Is(err, domerrors.ErrUserNotFound):
			writeErr(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domerrors.ErrAlreadyVerified):
			writeErr(w, http.StatusBadRequest, "Email already verified")
		case errors.Is(err, domerrors.ErrOTPNotFound):
			writeErr(w, http.StatusBadRequest, "No OTP found. Please register again.")
		case errors.Is(err, domerrors.ErrOTPExpired):
			writeErr(w, http.StatusBadRequest, "OTP expired. Please request a new one.")
		case errors.Is(err, domerrors.ErrOTPMismatch):
			writeErr(w, http.StatusBadRequest, "Invalid OTP")
		default:
			h.log.Error().Err(err).Msg("otp verification failed")
			writeErr(w, http.StatusInternalServerError, "Verification failed. Please try again.")
		}
		return
	}
	AuditLog(h.log, r, "auth.verify_otp", result.User.ID.Hex(), true, "")
	middleware.RecordAuthAttempt("verify_otp", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "Email verified successfully!",
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         userPayload(result.User.ID.Hex(), result.User.Name, result.User.Email),
	})
}

func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeErr(w, http.StatusBadRequest, "Email is required")
		return
	}

	if _, err := h.resendOTP.Execute(r.Context(), auth.ResendOTPInput{Email: email}); err != nil {
		AuditLog(h.log, r, "auth.resend_otp", "", false, err.Error())
		middleware.RecordAuthAttempt("resend_otp", false)
		switch {
		case errors.Is(err, domerrors.ErrUserNotFound):
			writeErr(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domerrors.ErrAlreadyVerified):
			writeErr(w, http.StatusBadRequest, "Email already verified")
		default:
			h.log.Error().Err(err).Msg("resend otp failed")
			writeErr(w, http.StatusInternalServerError, "Failed to resend OTP. Please try again.")
		}
		return
	}
	AuditLog(h.log, r, "auth.resend_otp", "", true, "")
	middleware.RecordAuthAttempt("resend_otp", true)
	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP resent successfully!"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" || body.Password == "" {
		writeErr(w, http.StatusBadRequest, "All fields are required")
		return
	}

	result, err := h.login.Execute(r.Context(), auth.LoginInput{Email: email, Password: body.Password})
	if err != nil {
		AuditLog(h.log, r, "auth.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		switch {
		case errors.Is(err, domerrors.ErrInvalidCredentials):
			writeErr(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domerrors.ErrEmailNotVerified):
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"message":              "Please verify your email before logging in",
				"requiresVerification": true,
			})
		default:
			h.log.Error().Err(err).Msg("login failed")
			writeErr(w, http.StatusInternalServerError, "Login failed. Please try again.")
		}
		return
	}
	AuditLog(h.log, r, "auth.login", result.User.ID.Hex(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"accessToken":  result.AccessToken,
		"refreshToken": result.RefreshToken,
		"user":         userPayload(result.User.ID.Hex(), result.User.Name, result.User.Email),
	})
}

func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if body.RefreshToken == "" {
		writeErr(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	result, err := h.refresh.Execute(r.Context(), auth.RefreshInput{
		RefreshToken: TruncateRefreshToken(body.RefreshToken),
	})
	if err != nil {
		AuditLog(h.log, r, "auth.refresh", "", false, err.Error())
		middleware.RecordAuthAttempt("refresh", false)
		switch {
		case errors.Is(err, domerrors.ErrInvalidToken):
			writeErr(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		case errors.Is(err, domerrors.ErrRefreshMismatch):
			writeErr(w, http.StatusUnauthorized, "Invalid refresh token")
		default:
			h.log.Error().Err(err).Msg("refresh failed")
			writeErr(w, http.StatusInternalServerError, "Token refresh failed. Please try again.")
		}
		return
	}
	AuditLog(h.log, r, "auth.refresh", "", true, "")
	middleware.RecordAuthAttempt("refresh", true)
	writeJSON(w, http.StatusOK, map[string]string{"accessToken": result.AccessToken})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if _, err := h.logout.Execute(r.Context(), auth.LogoutInput{UserID: userID}); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		writeErr(w, http.StatusInternalServerError, "Logout failed. Please try again.")
		return
	}
	AuditLog(h.log, r, "auth.logout", userID, true, "")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
