package config

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func TestSecretRoundTrip(t *testing.T) {
	sealed, err := EncryptSecret("super-secret-signing-key", testKeyHex)
	require.NoError(t, err)

	opened, err := DecryptSecret(sealed, testKeyHex)
	require.NoError(t, err)
	assert.Equal(t, "super-secret-signing-key", opened)
}

func TestEncryptSecretRejectsShortKey(t *testing.T) {
	_, err := EncryptSecret("secret", "deadbeef")
	assert.Error(t, err)
}

func TestDecryptSecretRejectsCorruptTag(t *testing.T) {
	sealed, err := EncryptSecret("super-secret", testKeyHex)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	parts := strings.Split(string(raw), ":")
	require.Len(t, parts, 3)

	// Flip one hex digit of the tag.
	tag := []byte(parts[2])
	if tag[0] == '0' {
		tag[0] = '1'
	} else {
		tag[0] = '0'
	}
	parts[2] = string(tag)
	corrupted := base64.StdEncoding.EncodeToString([]byte(strings.Join(parts, ":")))

	_, err = DecryptSecret(corrupted, testKeyHex)
	assert.Error(t, err)
}

func TestDecryptSecretRejectsWrongKey(t *testing.T) {
	sealed, err := EncryptSecret("super-secret", testKeyHex)
	require.NoError(t, err)

	wrongKey := "ff0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1eff"
	_, err = DecryptSecret(sealed, wrongKey)
	assert.Error(t, err)
}

func TestDecryptSecretRejectsMalformedContainer(t *testing.T) {
	_, err := DecryptSecret("not-base64!!!", testKeyHex)
	assert.Error(t, err)

	noColons := base64.StdEncoding.EncodeToString([]byte("justonechunk"))
	_, err = DecryptSecret(noColons, testKeyHex)
	assert.Error(t, err)
}

func TestResolveJWTSecret(t *testing.T) {
	t.Run("plaintext wins", func(t *testing.T) {
		cfg := &Config{JWT: JWTConfig{Secret: "plain", SecretEnc: "ignored", SecretKey: "ignored"}}
		secret, err := cfg.ResolveJWTSecret()
		require.NoError(t, err)
		assert.Equal(t, "plain", secret)
	})

	t.Run("encrypted fallback", func(t *testing.T) {
		sealed, err := EncryptSecret("sealed-secret", testKeyHex)
		require.NoError(t, err)
		cfg := &Config{JWT: JWTConfig{SecretEnc: sealed, SecretKey: testKeyHex}}
		secret, err := cfg.ResolveJWTSecret()
		require.NoError(t, err)
		assert.Equal(t, "sealed-secret", secret)
	})

	t.Run("nothing configured", func(t *testing.T) {
		cfg := &Config{}
		_, err := cfg.ResolveJWTSecret()
		assert.ErrorIs(t, err, ErrNoJWTSecret)
	})
}
