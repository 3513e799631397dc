// Package user defines the account-holder entity and the business rules
// around registration, profile updates and the connection graph.
package user

import (
	"time"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/utils"
)

// AuthProvider identifies how a user authenticates. It governs which
// profile fields are mutable: local accounts may change email, username
// and password; federated accounts may only change their username.
type AuthProvider string

const (
	ProviderLocal    AuthProvider = "LOCAL"
	ProviderGoogle   AuthProvider = "GOOGLE"
	ProviderFacebook AuthProvider = "FACEBOOK"
)

// IsLocal reports whether the account carries local credentials.
func (p AuthProvider) IsLocal() bool {
	return p == ProviderLocal
}

// User represents an account holder. The balance is the user's spendable
// amount; it is never negative after a committed operation and is mutated
// only by deposits and transfers.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string // set only for ProviderLocal accounts
	Provider     AuthProvider
	Balance      money.Money
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a local user with a hashed password and a zero balance.
func New(username, email, password string) (*User, error) {
	if username == "" {
		return nil, ErrMissingUsername
	}
	if email == "" {
		return nil, ErrMissingEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Provider:     ProviderLocal,
		Balance:      money.Zero(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
