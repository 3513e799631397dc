// Package transfer holds the transfer request shape and the pure validation
// logic applied before any balance is mutated.
package transfer

import (
	"github.com/google/uuid"
)

// Request is the transient input of a transfer. It is bound by the web
// layer from raw form fields; Amount stays a decimal string until the
// validator parses it, so malformed numeric input lands on the invalid
// amount error path instead of failing at binding.
type Request struct {
	ReceiverID  uuid.UUID
	Amount      string
	Description string
}
