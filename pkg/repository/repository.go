// Package repository defines the data-access contracts consumed by the
// services: the user and transaction repositories and the unit of work
// that binds them to one database transaction.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/dto"
)

// UserRepository is the data-access contract for user rows, their balances
// and the connection graph. Get-style methods return (nil, nil) when the
// row does not exist.
type UserRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	// GetForUpdate reads a user row with a row-level write lock, so the
	// balance seen inside the surrounding unit of work cannot be changed
	// by a concurrent transfer until commit or rollback.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.UserRead, error)

	GetByEmail(ctx context.Context, email string) (*dto.UserRead, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserRead, error)
	Create(ctx context.Context, create *dto.UserCreate) error

	// Update applies a partial update; nil fields are untouched.
	Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error

	// UpdateBalance writes the balance column of a single row, independent
	// of any loaded entity state.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error

	// ListConnections returns the owner's contacts in insertion order.
	ListConnections(ctx context.Context, ownerID uuid.UUID) ([]*dto.ConnectionRead, error)
	HasConnection(ctx context.Context, ownerID, targetID uuid.UUID) (bool, error)
	AddConnection(ctx context.Context, ownerID, targetID uuid.UUID) error
}

// TransactionRepository is the append-only contract for ledger entries.
// Rows are never updated or deleted.
type TransactionRepository interface {
	// Create inserts a ledger entry and returns the persisted read model
	// with its assigned monotonic id.
	Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error)
	ListBySender(ctx context.Context, senderID uuid.UUID) ([]*dto.TransactionRead, error)
}
