package transfer

import (
	"errors"
	"fmt"

	"github.com/jbaptiste/paybuddy/pkg/domain/money"
)

var (
	// ErrMissingReceiver is returned when the request names no receiver.
	ErrMissingReceiver = errors.New("Le destinataire est requis")

	// ErrMissingAmount is returned when the request carries no amount.
	ErrMissingAmount = errors.New("Le montant est requis")

	// ErrSelfTransfer is returned when sender and receiver are the same user.
	ErrSelfTransfer = errors.New("Vous ne pouvez pas vous envoyer de l'argent à vous même")

	// ErrReceiverNotFound is returned when the receiver id resolves to no user.
	ErrReceiverNotFound = errors.New("Le destinataire n'existe pas")

	// ErrInsufficientFunds is the class sentinel matched by
	// InsufficientFundsError through errors.Is.
	ErrInsufficientFunds = errors.New("solde insuffisant")
)

// InsufficientFundsError reports that the requested amount exceeds the
// sender's available balance. The message carries both amounts formatted to
// two decimals for user display.
type InsufficientFundsError struct {
	Available money.Money
	Requested money.Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf(
		"Solde insuffisant : %s € disponible, mais %s € demandé.",
		e.Available.Format(), e.Requested.Format(),
	)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}
