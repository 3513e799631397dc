// Package dto defines the data shapes that cross the repository boundary.
// Write models (Create/Update) flow into the store, read models flow out;
// repositories never expose persistence structs directly.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
)

// UserCreate is the write model for inserting a new user row.
type UserCreate struct {
	ID       uuid.UUID
	Username string
	Email    string
	Password string // bcrypt hash, empty for federated accounts
	Provider string
}

// UserRead is the read model for a user row, including the current balance.
type UserRead struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Provider  string
	Balance   money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserUpdate is a partial update; nil fields are left untouched.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
	Provider *string
}

// ConnectionRead is a contact summary for the payee picker.
type ConnectionRead struct {
	ID       uuid.UUID
	Username string
	Email    string
}
