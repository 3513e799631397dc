package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
)

// TransactionCreate is the write model for appending a ledger entry.
// Commission is persisted but unused by the transfer logic.
type TransactionCreate struct {
	SenderID    uuid.UUID
	ReceiverID  uuid.UUID
	Amount      money.Money
	Commission  money.Money
	Description string
}

// TransactionRead is the read model for a persisted ledger entry.
// ReceiverUsername is resolved for display.
type TransactionRead struct {
	ID               int64
	SenderID         uuid.UUID
	ReceiverID       uuid.UUID
	ReceiverUsername string
	Amount           money.Money
	Commission       money.Money
	Description      string
	CreatedAt        time.Time
}
