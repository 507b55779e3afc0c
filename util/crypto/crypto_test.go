package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

func TestBcryptRoundTrip(t *testing.T) {
	hash, err := HashPasswordAsBcrypt("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", hash)

	assert.True(t, CheckPasswordHash(hash, "pw1"))
	assert.False(t, CheckPasswordHash(hash, "pw2"))
	assert.False(t, CheckPasswordHash(hash, ""))
}

func TestBcryptIsSalted(t *testing.T) {
	h1, err := HashPasswordAsBcrypt("same")
	require.NoError(t, err)
	h2, err := HashPasswordAsBcrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestLegacyPbkdf2Hash(t *testing.T) {
	salt := "Ab3dEf6hIj9kLm0p"
	key := pbkdf2.Key([]byte("secret"), []byte(salt), 1000, sha256.Size, sha256.New)
	stored := "pbkdf2:sha256:1000$" + salt + "$" + hex.EncodeToString(key)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{"matching password", stored, "secret", true},
		{"wrong password", stored, "Secret", false},
		{"unknown digest", "pbkdf2:md4:1000$" + salt + "$" + hex.EncodeToString(key), "secret", false},
		{"bad iterations", "pbkdf2:sha256:abc$" + salt + "$" + hex.EncodeToString(key), "secret", false},
		{"missing parts", "pbkdf2:sha256:1000$" + salt, "secret", false},
		{"non hex digest", "pbkdf2:sha256:1000$" + salt + "$zz", "secret", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPasswordHash(tt.hash, tt.password))
		})
	}
}

func TestHashPasswordTooLong(t *testing.T) {
	_, err := HashPasswordAsBcrypt(strings.Repeat("p", MaxPasswordLength+1))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)

	hash, err := HashPasswordAsBcrypt(strings.Repeat("p", MaxPasswordLength))
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash(hash, strings.Repeat("p", MaxPasswordLength)))
}
