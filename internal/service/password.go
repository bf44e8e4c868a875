package service

import (
	"errors"
	"math/rand"
)

// --- Error Definitions ---
var (
	ErrInvalidPassword = errors.New("password must be exactly 10 characters long")
)

const passwordCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// PasswordLength is the fixed length of every system-issued password.
// User-supplied passwords are held to the same length.
const PasswordLength = 10

// GeneratePassword returns a random alphanumeric secret of the given
// length, or "" for a zero or negative length. No uniqueness guarantee
// is made; callers do not re-check for collisions.
func GeneratePassword(length int) string {
	if length <= 0 {
		return ""
	}
	password := make([]byte, length)
	for i := range password {
		password[i] = passwordCharset[rand.Intn(len(passwordCharset))]
	}
	return string(password)
}

// ValidatePassword checks a user-supplied password against the fixed
// length rule before it may be stored.
func ValidatePassword(password string) error {
	if len(password) != PasswordLength {
		return ErrInvalidPassword
	}
	return nil
}
