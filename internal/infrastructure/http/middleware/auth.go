package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/amirhosseinghanipour/taskdeck/internal/application/ports"
)

// AuthValidator validates the bearer access token and sets the user id in
// context (see UserIDFromContext). It does not re-check verification state:
// once issued, a token stays usable for its lifetime.
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			unauthorized(w, "Authentication required")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userID, err := m.issuer.Verify(tokenString)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}
		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
