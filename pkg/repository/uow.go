package repository

import (
	"context"
	"reflect"
)

// UnitOfWork is the transaction boundary plus type-safe repository access.
//
// Repository accessors live on the UnitOfWork so that every repository used
// inside Do shares the same database session. Mixing sessions would break
// atomicity: a balance write and the matching ledger insert must commit or
// roll back together.
type UnitOfWork interface {
	// Do executes fn within one atomic unit of work. All reads and writes
	// made through the provided UnitOfWork are isolated from concurrent
	// units touching the same rows, and either fully commit or fully roll
	// back. fn returning an error aborts the unit.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current transaction.
	GetRepository(repoType reflect.Type) (any, error)

	// Typed convenience accessors.
	UserRepository() (UserRepository, error)
	TransactionRepository() (TransactionRepository, error)
}
