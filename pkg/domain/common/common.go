// Package common holds errors shared across domain packages.
package common

import "errors"

// ErrPersistence wraps any storage or transaction-layer failure, including
// timeouts and constraint violations. It is surfaced to callers as a generic
// failure; the underlying driver detail never reaches the end user.
var ErrPersistence = errors.New("une erreur interne est survenue, veuillez réessayer")
