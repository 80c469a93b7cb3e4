package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer implements ports.TokenIssuer with HS256. Access and refresh
// tokens share the signing secret and differ only in lifetime.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

type userClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenIssuer(secret []byte, issuer string, accessExpirySecs, refreshExpirySecs int64) *TokenIssuer {
	return &TokenIssuer{
		secret:     secret,
		issuer:     issuer,
		accessTTL:  time.Duration(accessExpirySecs) * time.Second,
		refreshTTL: time.Duration(refreshExpirySecs) * time.Second,
	}
}

func (t *TokenIssuer) IssueAccessToken(userID string) (string, error) {
	return t.issue(userID, t.accessTTL)
}

func (t *TokenIssuer) IssueRefreshToken(userID string) (string, error) {
	return t.issue(userID, t.refreshTTL)
}

func (t *TokenIssuer) issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := userClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature and expiry. Every failure collapses into one error
// so callers cannot distinguish a bad signature from an expired token.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &userClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(*userClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}
