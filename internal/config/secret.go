package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrNoJWTSecret means neither JWT_SECRET nor JWT_SECRET_ENC+JWT_SECRET_KEY is
// configured. The server refuses to start without a usable signing secret.
var ErrNoJWTSecret = errors.New("no JWT secret configured: set JWT_SECRET or JWT_SECRET_ENC + JWT_SECRET_KEY")

// ResolveJWTSecret returns the plaintext signing secret, decrypting the
// encrypted-at-rest variant when no plaintext secret is set.
func (c *Config) ResolveJWTSecret() (string, error) {
	if c.JWT.Secret != "" {
		return c.JWT.Secret, nil
	}
	if c.JWT.SecretEnc != "" && c.JWT.SecretKey != "" {
		return DecryptSecret(c.JWT.SecretEnc, c.JWT.SecretKey)
	}
	return "", ErrNoJWTSecret
}

// DecryptSecret opens an AES-256-GCM container produced by EncryptSecret (or
// the secretenc CLI). The container is base64("ivHex:ciphertextHex:tagHex");
// key is the 32-byte AES key in hex.
func DecryptSecret(encrypted, keyHex string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encrypted)
	if err != nil {
		return "", fmt.Errorf("decode encrypted secret: %w", err)
	}
	parts := strings.Split(string(raw), ":")
	if len(parts) != 3 {
		return "", errors.New("invalid encrypted secret format")
	}
	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode iv: %w", err)
	}
	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}
	tag, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("decode tag: %w", err)
	}
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return "", fmt.Errorf("decode key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return "", err
	}
	plain, err := gcm.Open(nil, iv, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("decrypt secret: %w", err)
	}
	return string(plain), nil
}

// EncryptSecret seals a secret into the container format DecryptSecret reads.
func EncryptSecret(secret, keyHex string) (string, error) {
	key, err := hex.DecodeString(keyHex)
	if err != nil {
		return "", fmt.Errorf("decode key: %w", err)
	}
	if len(key) != 32 {
		return "", errors.New("key must be 32 bytes (64 hex chars)")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}
	iv := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}
	sealed := gcm.Seal(nil, iv, []byte(secret), nil)
	// Seal appends the 16-byte tag; split it back out for the container.
	ciphertext, tag := sealed[:len(sealed)-gcm.Overhead()], sealed[len(sealed)-gcm.Overhead():]
	container := hex.EncodeToString(iv) + ":" + hex.EncodeToString(ciphertext) + ":" + hex.EncodeToString(tag)
	return base64.StdEncoding.EncodeToString([]byte(container)), nil
}
