package webapi

import (
	"github.com/jbaptiste/paybuddy/pkg/dto"
)

// UserView is the JSON projection of a user. The password hash never
// leaves the service layer through this type.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Provider string `json:"provider"`
	Balance  string `json:"balance"`
}

func toUserView(u *dto.UserRead) UserView {
	return UserView{
		ID:       u.ID.String(),
		Username: u.Username,
		Email:    u.Email,
		Provider: u.Provider,
		Balance:  u.Balance.Format(),
	}
}

// TransactionView is the JSON projection of a ledger entry.
type TransactionView struct {
	ID               int64  `json:"id"`
	ReceiverID       string `json:"receiver_id"`
	ReceiverUsername string `json:"receiver_username"`
	Amount           string `json:"amount"`
	Description      string `json:"description,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func toTransactionView(t *dto.TransactionRead) TransactionView {
	return TransactionView{
		ID:               t.ID,
		ReceiverID:       t.ReceiverID.String(),
		ReceiverUsername: t.ReceiverUsername,
		Amount:           t.Amount.Format(),
		Description:      t.Description,
		CreatedAt:        t.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ConnectionView is the JSON projection of a payee contact.
type ConnectionView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toConnectionView(c *dto.ConnectionRead) ConnectionView {
	return ConnectionView{
		ID:       c.ID.String(),
		Username: c.Username,
		Email:    c.Email,
	}
}
