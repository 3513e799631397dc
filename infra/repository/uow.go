// Package repository provides the gorm-backed unit of work.
package repository

import (
	"context"
	"fmt"
	"reflect"

	infrauser "github.com/jbaptiste/paybuddy/infra/repository/user"

	infratransaction "github.com/jbaptiste/paybuddy/infra/repository/transaction"
	"github.com/jbaptiste/paybuddy/pkg/repository"
	"gorm.io/gorm"
)

// UoW binds the transaction boundary and repository access together: every
// repository handed out inside Do uses the transaction's session, so a
// balance write and its ledger insert cannot end up in different
// transactions.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a unit of work for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			reflect.TypeOf((*repository.UserRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return infrauser.New(db)
			},
			reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem(): func(db *gorm.DB) any {
				return infratransaction.New(db)
			},
		},
	}
}

// Do runs fn inside one database transaction. An error from fn rolls the
// whole transaction back; otherwise it commits.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

// GetRepository returns a repository of the requested interface type bound
// to the current transaction session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.UserRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.UserRepository), nil
}

// TransactionRepository returns the ledger repository bound to the current
// session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	repoAny, err := u.GetRepository(reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem())
	if err != nil {
		return nil, err
	}
	return repoAny.(repository.TransactionRepository), nil
}

// session returns the transaction session when inside Do, else the base DB.
func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}
