// Package mocks provides hand-written test doubles for the repository
// contracts. Store keeps everything in memory and snapshots its state at
// the start of each unit of work, so rollback behaviour can be asserted
// without a database.
package mocks

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/repository"
)

type connection struct {
	ownerID  uuid.UUID
	targetID uuid.UUID
	seq      int
}

// Store is an in-memory repository.UnitOfWork whose repositories share its
// state. Error fields inject storage failures at specific call sites.
type Store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]dto.UserRead
	connections  []connection
	transactions []dto.TransactionRead
	nextTxID     int64
	nextSeq      int

	// Failure injection. When set, the matching method returns the error.
	GetErr           error
	GetForUpdateErr  error
	UpdateBalanceErr error
	CreateTxErr      error
	AddConnectionErr error

	// GetForUpdateFunc, when set, replaces locked reads entirely. Lets a
	// test simulate a store that does not actually hold the row lock.
	GetForUpdateFunc func(id uuid.UUID) (*dto.UserRead, error)
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:    make(map[uuid.UUID]dto.UserRead),
		nextTxID: 1,
	}
}

// SeedUser inserts a user directly, bypassing the repository contract.
func (s *Store) SeedUser(u dto.UserRead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
}

// BalanceOf reads a seeded user's balance for assertions.
func (s *Store) BalanceOf(id uuid.UUID) money.Money {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Balance
}

// TransactionCount reports how many ledger rows exist.
func (s *Store) TransactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

type snapshot struct {
	users        map[uuid.UUID]dto.UserRead
	connections  []connection
	transactions []dto.TransactionRead
	nextTxID     int64
	nextSeq      int
}

func (s *Store) snapshot() snapshot {
	users := make(map[uuid.UUID]dto.UserRead, len(s.users))
	for id, u := range s.users {
		users[id] = u
	}
	return snapshot{
		users:        users,
		connections:  append([]connection(nil), s.connections...),
		transactions: append([]dto.TransactionRead(nil), s.transactions...),
		nextTxID:     s.nextTxID,
		nextSeq:      s.nextSeq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.connections = snap.connections
	s.transactions = snap.transactions
	s.nextTxID = snap.nextTxID
	s.nextSeq = snap.nextSeq
}

// Do runs fn against the store, restoring the pre-call state when fn
// returns an error. This mirrors the commit-or-rollback contract.
func (s *Store) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	s.mu.Lock()
	snap := s.snapshot()
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

// GetRepository resolves a repository by interface type.
func (s *Store) GetRepository(repoType reflect.Type) (any, error) {
	switch repoType {
	case reflect.TypeOf((*repository.TransactionRepository)(nil)).Elem():
		return &txRepo{s}, nil
	default:
		return &userRepo{s}, nil
	}
}

// UserRepository returns a user repository view over the store.
func (s *Store) UserRepository() (repository.UserRepository, error) {
	return &userRepo{s}, nil
}

// TransactionRepository returns a ledger view over the store.
func (s *Store) TransactionRepository() (repository.TransactionRepository, error) {
	return &txRepo{s}, nil
}

type userRepo struct {
	s *Store
}

func (r *userRepo) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	if r.s.GetForUpdateErr != nil {
		return nil, r.s.GetForUpdateErr
	}
	if r.s.GetForUpdateFunc != nil {
		return r.s.GetForUpdateFunc(id)
	}
	if r.s.GetErr != nil {
		return nil, r.s.GetErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *userRepo) Create(ctx context.Context, create *dto.UserCreate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[create.ID] = dto.UserRead{
		ID:       create.ID,
		Username: create.Username,
		Email:    create.Email,
		Password: create.Password,
		Provider: create.Provider,
		Balance:  money.Zero(),
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.Password != nil {
		u.Password = *update.Password
	}
	if update.Provider != nil {
		u.Provider = *update.Provider
	}
	r.s.users[id] = u
	return nil
}

func (r *userRepo) UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	if r.s.UpdateBalanceErr != nil {
		return r.s.UpdateBalanceErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil
	}
	u.Balance = balance
	r.s.users[id] = u
	return nil
}

func (r *userRepo) ListConnections(ctx context.Context, ownerID uuid.UUID) ([]*dto.ConnectionRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var edges []connection
	for _, c := range r.s.connections {
		if c.ownerID == ownerID {
			edges = append(edges, c)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].seq < edges[j].seq })
	out := make([]*dto.ConnectionRead, 0, len(edges))
	for _, c := range edges {
		target := r.s.users[c.targetID]
		out = append(out, &dto.ConnectionRead{
			ID:       target.ID,
			Username: target.Username,
			Email:    target.Email,
		})
	}
	return out, nil
}

func (r *userRepo) HasConnection(ctx context.Context, ownerID, targetID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.connections {
		if c.ownerID == ownerID && c.targetID == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) AddConnection(ctx context.Context, ownerID, targetID uuid.UUID) error {
	if r.s.AddConnectionErr != nil {
		return r.s.AddConnectionErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.connections = append(r.s.connections, connection{
		ownerID:  ownerID,
		targetID: targetID,
		seq:      r.s.nextSeq,
	})
	r.s.nextSeq++
	return nil
}

type txRepo struct {
	s *Store
}

func (r *txRepo) Create(ctx context.Context, create dto.TransactionCreate) (*dto.TransactionRead, error) {
	if r.s.CreateTxErr != nil {
		return nil, r.s.CreateTxErr
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	receiver := r.s.users[create.ReceiverID]
	row := dto.TransactionRead{
		ID:               r.s.nextTxID,
		SenderID:         create.SenderID,
		ReceiverID:       create.ReceiverID,
		ReceiverUsername: receiver.Username,
		Amount:           create.Amount,
		Commission:       create.Commission,
		Description:      create.Description,
	}
	r.s.nextTxID++
	r.s.transactions = append(r.s.transactions, row)
	return &row, nil
}

func (r *txRepo) ListBySender(ctx context.Context, senderID uuid.UUID) ([]*dto.TransactionRead, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*dto.TransactionRead
	for i := range r.s.transactions {
		if r.s.transactions[i].SenderID == senderID {
			row := r.s.transactions[i]
			out = append(out, &row)
		}
	}
	return out, nil
}
