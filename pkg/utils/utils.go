// Package utils provides password hashing and small input checks shared by
// the auth and user services.
package utils

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// emailRegex mirrors the format accepted at registration and profile update.
var emailRegex = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+$`)

// HashPassword hashes a plain password using bcrypt with cost 14.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

// CheckPasswordHash compares a plain password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IsEmail returns true if the string looks like an email address.
func IsEmail(email string) bool {
	return emailRegex.MatchString(email)
}
