// Package crypto provides password hashing and verification.
package crypto

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

// MaxPasswordLength is the longest password, in bytes, bcrypt accepts.
const MaxPasswordLength = 72

// HashPasswordAsBcrypt generates a bcrypt hash of the given password.
func HashPasswordAsBcrypt(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", bcrypt.ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash verifies password against a stored hash. Besides bcrypt it accepts
// werkzeug-style "pbkdf2:<digest>:<iterations>$<salt>$<hex>" hashes found in older blog databases.
func CheckPasswordHash(hash, password string) bool {
	if strings.HasPrefix(hash, "pbkdf2:") {
		return checkPbkdf2Hash(hash, password)
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func checkPbkdf2Hash(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method, salt, want := parts[0], parts[1], parts[2]

	args := strings.Split(method, ":")
	if len(args) < 2 {
		return false
	}
	newHash := digestFor(args[1])
	if newHash == nil {
		return false
	}
	iterations := 600000
	if len(args) == 3 {
		n, err := strconv.Atoi(args[2])
		if err != nil || n <= 0 {
			return false
		}
		iterations = n
	}

	wantBytes, err := hex.DecodeString(want)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), []byte(salt), iterations, newHash().Size(), newHash)
	return subtle.ConstantTimeCompare(got, wantBytes) == 1
}

func digestFor(name string) func() hash.Hash {
	switch name {
	case "sha1":
		return sha1.New
	case "sha256":
		return sha256.New
	case "sha512":
		return sha512.New
	}
	return nil
}
