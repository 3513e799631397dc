package transfer

import (
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/dto"
)

// ReceiverLookup resolves a user by id. It returns (nil, nil) when the user
// does not exist; the validator turns that into ErrReceiverNotFound.
type ReceiverLookup func(id uuid.UUID) (*dto.UserRead, error)

// Validated is the outcome of a successful validation: the normalized
// amount and the resolved receiver.
type Validated struct {
	Amount   money.Money
	Receiver *dto.UserRead
}

// Validate checks a transfer request against the business rules without
// mutating any state. Checks run in a fixed order and the first failure
// wins, so error messages are deterministic:
//
//  1. a receiver is named
//  2. the receiver is not the sender
//  3. the amount parses, has at most two decimals and is positive
//  4. the amount does not exceed the sender's balance
//  5. the receiver exists
func Validate(
	req Request,
	senderID uuid.UUID,
	senderBalance money.Money,
	lookup ReceiverLookup,
) (*Validated, error) {
	if req.ReceiverID == uuid.Nil {
		return nil, ErrMissingReceiver
	}
	if req.ReceiverID == senderID {
		return nil, ErrSelfTransfer
	}
	if req.Amount == "" {
		return nil, ErrMissingAmount
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, money.ErrInvalidAmount
	}
	if amount.GreaterThan(senderBalance) {
		return nil, &InsufficientFundsError{
			Available: senderBalance,
			Requested: amount,
		}
	}
	receiver, err := lookup(req.ReceiverID)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, ErrReceiverNotFound
	}
	return &Validated{Amount: amount, Receiver: receiver}, nil
}
