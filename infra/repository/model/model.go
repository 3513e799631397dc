// Package model holds the gorm persistence models. They stay private to
// the infra layer; repositories map them to the dto read/write models.
package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a row of the users table. BalanceCents stores the balance at
// scale 2; the check constraint backs the "never negative after commit"
// invariant at the storage level too.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"uniqueIndex;not null;size:50"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	Password     string    `gorm:"size:100"`
	AuthProvider string    `gorm:"type:varchar(16);not null;default:'LOCAL'"`
	BalanceCents int64     `gorm:"not null;default:0;check:balance_cents >= 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserConnection is a directed edge of the connection graph: the owner has
// added the target as a payee contact. CreatedAt preserves insertion order
// for the contact list.
type UserConnection struct {
	UserID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ConnectionID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time
}

// Transaction is an immutable ledger entry. The id is monotonically
// assigned by the database; rows are inserted once and never touched again.
type Transaction struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	SenderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID      uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountCents     int64     `gorm:"not null;check:amount_cents > 0"`
	CommissionCents int64     `gorm:"not null;default:0"`
	Description     string    `gorm:"size:255"`
	CreatedAt       time.Time
}
