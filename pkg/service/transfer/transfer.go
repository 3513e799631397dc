// Package transfer provides the transfer executor: it validates a transfer
// request and applies the two balance writes and the ledger insert as one
// atomic unit of work.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/common"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	transferdomain "github.com/jbaptiste/paybuddy/pkg/domain/transfer"
	userdomain "github.com/jbaptiste/paybuddy/pkg/domain/user"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/repository"
)

// Service executes transfers and serves the transaction history projection.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a transfer service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Execute runs a transfer from senderID as one atomic unit of work:
// a locked fresh read of the sender's balance, validation, a locked read
// of the receiver, both balance writes and the ledger insert. Any failure
// rolls the whole unit back; on success exactly two balances changed and
// one transaction row exists.
//
// Crossing transfers (A to B while B to A) can deadlock on the row locks;
// the database aborts one side, which surfaces as a persistence error.
func (s *Service) Execute(
	ctx context.Context,
	senderID uuid.UUID,
	req transferdomain.Request,
) (created *dto.TransactionRead, err error) {
	logger := s.logger.With("senderID", senderID, "receiverID", req.ReceiverID)
	logger.Info("transfer requested", "amount", req.Amount)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}

		// Fresh read under lock; never a cached balance.
		sender, err := users.GetForUpdate(ctx, senderID)
		if err != nil {
			return err
		}
		if sender == nil {
			return userdomain.ErrUserNotFound
		}

		validated, err := transferdomain.Validate(
			req, senderID, sender.Balance,
			func(id uuid.UUID) (*dto.UserRead, error) {
				return users.GetForUpdate(ctx, id)
			},
		)
		if err != nil {
			return err
		}

		// The balance written comes from a fresh locked read at write time,
		// not from the value validation saw. With a store that truly holds
		// the row lock both reads agree; if the lock was not held and a
		// concurrent debit slipped in, the overdraft surfaces here instead
		// of being committed.
		sender, err = users.GetForUpdate(ctx, senderID)
		if err != nil {
			return err
		}
		if sender == nil {
			return userdomain.ErrUserNotFound
		}
		newSenderBalance := sender.Balance.Subtract(validated.Amount)
		if newSenderBalance.IsNegative() {
			return &transferdomain.InsufficientFundsError{
				Available: sender.Balance,
				Requested: validated.Amount,
			}
		}
		newReceiverBalance := validated.Receiver.Balance.Add(validated.Amount)

		if err := users.UpdateBalance(ctx, senderID, newSenderBalance); err != nil {
			return err
		}
		if err := users.UpdateBalance(ctx, validated.Receiver.ID, newReceiverBalance); err != nil {
			return err
		}

		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		created, err = txs.Create(ctx, dto.TransactionCreate{
			SenderID:    senderID,
			ReceiverID:  validated.Receiver.ID,
			Amount:      validated.Amount,
			Commission:  money.Zero(),
			Description: req.Description,
		})
		return err
	})
	if err != nil {
		created = nil
		err = classify(err)
		if errors.Is(err, common.ErrPersistence) {
			logger.Error("transfer aborted", "error", err)
		} else {
			logger.Warn("transfer rejected", "reason", err.Error())
		}
		return
	}
	logger.Info("transfer committed",
		"transactionID", created.ID,
		"amount", created.Amount,
	)
	return
}

// History returns the sender's ledger entries for display.
func (s *Service) History(
	ctx context.Context,
	senderID uuid.UUID,
) (entries []*dto.TransactionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		txs, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		entries, err = txs.ListBySender(ctx, senderID)
		return err
	})
	if err != nil {
		entries = nil
		err = classify(err)
	}
	return
}

// businessErrs are returned to the caller verbatim; anything else is a
// storage failure and is wrapped so driver detail never reaches the user.
var businessErrs = []error{
	transferdomain.ErrMissingReceiver,
	transferdomain.ErrMissingAmount,
	transferdomain.ErrSelfTransfer,
	transferdomain.ErrReceiverNotFound,
	transferdomain.ErrInsufficientFunds,
	money.ErrInvalidAmount,
	money.ErrTooManyDecimals,
	userdomain.ErrUserNotFound,
}

func classify(err error) error {
	for _, business := range businessErrs {
		if errors.Is(err, business) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", common.ErrPersistence, err)
}
