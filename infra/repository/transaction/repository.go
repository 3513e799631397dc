// Package transaction implements the append-only ledger repository over gorm.
package transaction

import (
	"context"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/infra/repository/model"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

// New creates a transaction repository bound to the given gorm session.
func New(db *gorm.DB) repository.TransactionRepository {
	return &repo{db: db}
}

// Create appends a ledger entry. The id is assigned by the database; the
// returned read model carries it together with the receiver's username,
// resolved within the same session.
func (r *repo) Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	tx := &model.Transaction{
		SenderID:        create.SenderID,
		ReceiverID:      create.ReceiverID,
		AmountCents:     create.Amount.Cents(),
		CommissionCents: create.Commission.Cents(),
		Description:     create.Description,
	}
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return nil, err
	}

	var receiverUsername string
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("username").
		Where("id = ?", create.ReceiverID).
		Scan(&receiverUsername).Error
	if err != nil {
		return nil, err
	}

	read := mapModelToDTO(tx)
	read.ReceiverUsername = receiverUsername
	return read, nil
}

// ListBySender returns the sender's ledger entries in id order, with the
// receiver's username joined in for display.
func (r *repo) ListBySender(ctx context.Context, senderID uuid.UUID) ([]*dto.TransactionRead, error) {
	var rows []struct {
		model.Transaction
		ReceiverUsername string
	}
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("transactions.*, users.username AS receiver_username").
		Joins("JOIN users ON users.id = transactions.receiver_id").
		Where("transactions.sender_id = ?", senderID).
		Order("transactions.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*dto.TransactionRead, 0, len(rows))
	for _, row := range rows {
		read := mapModelToDTO(&row.Transaction)
		read.ReceiverUsername = row.ReceiverUsername
		result = append(result, read)
	}
	return result, nil
}

func mapModelToDTO(tx *model.Transaction) *dto.TransactionRead {
	return &dto.TransactionRead{
		ID:          tx.ID,
		SenderID:    tx.SenderID,
		ReceiverID:  tx.ReceiverID,
		Amount:      money.FromCents(tx.AmountCents),
		Commission:  money.FromCents(tx.CommissionCents),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
}
