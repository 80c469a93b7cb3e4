package ports

// PasswordHasher hashes and verifies passwords (bcrypt).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates JWTs (HS256). Payloads carry only the user
// identifier; Verify collapses every failure into a single error so callers
// cannot tell a bad signature from an expired token.
type TokenIssuer interface {
	IssueAccessToken(userID string) (string, error)
	IssueRefreshToken(userID string) (string, error)
	Verify(tokenString string) (userID string, err error)
}
