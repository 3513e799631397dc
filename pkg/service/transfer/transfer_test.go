package transfer_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/internal/fixtures/mocks"
	"github.com/jbaptiste/paybuddy/pkg/domain/common"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	transferdomain "github.com/jbaptiste/paybuddy/pkg/domain/transfer"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/service/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedPair(store *mocks.Store, senderCents, receiverCents int64) (sender, receiver dto.UserRead) {
	sender = dto.UserRead{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Provider: "LOCAL",
		Balance:  money.FromCents(senderCents),
	}
	receiver = dto.UserRead{
		ID:       uuid.New(),
		Username: "bob",
		Email:    "bob@example.com",
		Provider: "LOCAL",
		Balance:  money.FromCents(receiverCents),
	}
	store.SeedUser(sender)
	store.SeedUser(receiver)
	return sender, receiver
}

func TestExecute_MovesMoneyAndRecordsTransaction(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 10000, 500)
	svc := transfer.New(store, newLogger())

	created, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID:  receiver.ID,
		Amount:      "20.00",
		Description: "remboursement resto",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, int64(8000), store.BalanceOf(sender.ID).Cents())
	assert.Equal(t, int64(2500), store.BalanceOf(receiver.ID).Cents())
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, sender.ID, created.SenderID)
	assert.Equal(t, receiver.ID, created.ReceiverID)
	assert.Equal(t, "bob", created.ReceiverUsername)
	assert.Equal(t, int64(2000), created.Amount.Cents())
	assert.True(t, created.Commission.IsZero())
	assert.Equal(t, "remboursement resto", created.Description)
}

func TestExecute_ExactBalanceSucceeds(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 2500, 0)
	svc := transfer.New(store, newLogger())

	_, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: receiver.ID,
		Amount:     "25.00",
	})
	require.NoError(t, err)
	assert.True(t, store.BalanceOf(sender.ID).IsZero())
	assert.Equal(t, int64(2500), store.BalanceOf(receiver.ID).Cents())
}

func TestExecute_InsufficientFunds(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 1000, 0)
	svc := transfer.New(store, newLogger())

	created, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: receiver.ID,
		Amount:     "100.00",
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, transferdomain.ErrInsufficientFunds)
	assert.Equal(t,
		"Solde insuffisant : 10.00 € disponible, mais 100.00 € demandé.",
		err.Error(),
	)

	// Nothing moved, nothing recorded.
	assert.Equal(t, int64(1000), store.BalanceOf(sender.ID).Cents())
	assert.Equal(t, int64(0), store.BalanceOf(receiver.ID).Cents())
	assert.Zero(t, store.TransactionCount())
}

func TestExecute_SelfTransfer(t *testing.T) {
	store := mocks.NewStore()
	sender, _ := seedPair(store, 10000, 0)
	svc := transfer.New(store, newLogger())

	_, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: sender.ID,
		Amount:     "10.00",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, transferdomain.ErrSelfTransfer)
	assert.Equal(t, "Vous ne pouvez pas vous envoyer de l'argent à vous même", err.Error())
	assert.Equal(t, int64(10000), store.BalanceOf(sender.ID).Cents())
}

func TestExecute_ReceiverDoesNotExist(t *testing.T) {
	store := mocks.NewStore()
	sender, _ := seedPair(store, 10000, 0)
	svc := transfer.New(store, newLogger())

	_, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: uuid.New(),
		Amount:     "10.00",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, transferdomain.ErrReceiverNotFound)
	assert.Equal(t, "Le destinataire n'existe pas", err.Error())
	assert.Equal(t, int64(10000), store.BalanceOf(sender.ID).Cents())
	assert.Zero(t, store.TransactionCount())
}

func TestExecute_RejectsThreeDecimals(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 10000, 0)
	svc := transfer.New(store, newLogger())

	_, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: receiver.ID,
		Amount:     "20.024",
	})
	assert.ErrorIs(t, err, money.ErrTooManyDecimals)
	assert.Equal(t, int64(10000), store.BalanceOf(sender.ID).Cents())
}

func TestExecute_UnknownSender(t *testing.T) {
	store := mocks.NewStore()
	svc := transfer.New(store, newLogger())

	_, err := svc.Execute(context.Background(), uuid.New(), transferdomain.Request{
		ReceiverID: uuid.New(),
		Amount:     "10.00",
	})
	assert.Error(t, err)
}

func TestExecute_BalanceDropBetweenReadsRejected(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 10000, 0)
	svc := transfer.New(store, newLogger())

	// Simulate a store whose locked reads do not actually hold the lock:
	// a concurrent debit lands between validation and the write-time read.
	senderReads := 0
	store.GetForUpdateFunc = func(id uuid.UUID) (*dto.UserRead, error) {
		if id == receiver.ID {
			r := receiver
			return &r, nil
		}
		senderReads++
		u := sender
		if senderReads > 1 {
			u.Balance = money.FromCents(1000)
		}
		return &u, nil
	}

	created, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: receiver.ID,
		Amount:     "50.00",
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, transferdomain.ErrInsufficientFunds)
	assert.Equal(t,
		"Solde insuffisant : 10.00 € disponible, mais 50.00 € demandé.",
		err.Error(),
	)

	// The overdraft was caught before any write.
	assert.Equal(t, int64(10000), store.BalanceOf(sender.ID).Cents())
	assert.Zero(t, store.TransactionCount())
}

func TestExecute_StorageFailureRollsBack(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 10000, 0)
	store.CreateTxErr = errors.New("connection reset")
	svc := transfer.New(store, newLogger())

	created, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
		ReceiverID: receiver.ID,
		Amount:     "20.00",
	})
	require.Error(t, err)
	assert.Nil(t, created)
	assert.ErrorIs(t, err, common.ErrPersistence)
	// Driver detail never reaches the caller message prefix.
	assert.ErrorContains(t, err, common.ErrPersistence.Error())

	// The ledger insert failed after both balance writes; everything
	// rolled back together.
	assert.Equal(t, int64(10000), store.BalanceOf(sender.ID).Cents())
	assert.Equal(t, int64(0), store.BalanceOf(receiver.ID).Cents())
	assert.Zero(t, store.TransactionCount())
}

func TestHistory_ReturnsOnlySenderRowsInOrder(t *testing.T) {
	store := mocks.NewStore()
	sender, receiver := seedPair(store, 100000, 0)
	svc := transfer.New(store, newLogger())

	for _, amount := range []string{"10.00", "20.00", "30.00"} {
		_, err := svc.Execute(context.Background(), sender.ID, transferdomain.Request{
			ReceiverID: receiver.ID,
			Amount:     amount,
		})
		require.NoError(t, err)
	}
	// A transfer in the other direction must not show up.
	_, err := svc.Execute(context.Background(), receiver.ID, transferdomain.Request{
		ReceiverID: sender.ID,
		Amount:     "5.00",
	})
	require.NoError(t, err)

	entries, err := svc.History(context.Background(), sender.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, int64(1000), entries[0].Amount.Cents())
	assert.Equal(t, int64(2000), entries[1].Amount.Cents())
	assert.Equal(t, int64(3000), entries[2].Amount.Cents())
	for _, e := range entries {
		assert.Equal(t, sender.ID, e.SenderID)
		assert.Equal(t, "bob", e.ReceiverUsername)
	}
	assert.Less(t, entries[0].ID, entries[1].ID)
	assert.Less(t, entries[1].ID, entries[2].ID)
}
