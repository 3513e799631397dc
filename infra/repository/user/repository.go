// Package user implements the user repository over gorm.
package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/infra/repository/model"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

// New creates a user repository bound to the given gorm session.
func New(db *gorm.DB) repository.UserRepository {
	return &repo{db: db}
}

func (r *repo) Get(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	return r.getOne(ctx, r.db, "id = ?", id)
}

// GetForUpdate reads the row under SELECT ... FOR UPDATE. Inside a unit of
// work this blocks concurrent transfers touching the same balance until
// commit or rollback, so the balance read here cannot go stale.
func (r *repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*dto.UserRead, error) {
	locked := r.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return r.getOne(ctx, locked, "id = ?", id)
}

func (r *repo) GetByEmail(ctx context.Context, email string) (*dto.UserRead, error) {
	return r.getOne(ctx, r.db, "email = ?", email)
}

func (r *repo) GetByUsername(ctx context.Context, username string) (*dto.UserRead, error) {
	return r.getOne(ctx, r.db, "username = ?", username)
}

func (r *repo) getOne(ctx context.Context, db *gorm.DB, query string, arg any) (*dto.UserRead, error) {
	var u model.User
	if err := db.WithContext(ctx).First(&u, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapModelToDTO(&u), nil
}

func (r *repo) Create(ctx context.Context, create *dto.UserCreate) error {
	u := &model.User{
		ID:           create.ID,
		Username:     create.Username,
		Email:        create.Email,
		Password:     create.Password,
		AuthProvider: create.Provider,
	}
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, update *dto.UserUpdate) error {
	updates := make(map[string]any)
	if update.Username != nil {
		updates["username"] = *update.Username
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Password != nil {
		updates["password"] = *update.Password
	}
	if update.Provider != nil {
		updates["auth_provider"] = *update.Provider
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// UpdateBalance writes the balance column of one row, independent of any
// loaded entity state.
func (r *repo) UpdateBalance(ctx context.Context, id uuid.UUID, balance money.Money) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("balance_cents", balance.Cents())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repo) ListConnections(ctx context.Context, ownerID uuid.UUID) ([]*dto.ConnectionRead, error) {
	var rows []struct {
		ID       uuid.UUID
		Username string
		Email    string
	}
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.id, users.username, users.email").
		Joins("JOIN user_connections uc ON uc.connection_id = users.id").
		Where("uc.user_id = ?", ownerID).
		Order("uc.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ConnectionRead, 0, len(rows))
	for _, row := range rows {
		result = append(result, &dto.ConnectionRead{
			ID:       row.ID,
			Username: row.Username,
			Email:    row.Email,
		})
	}
	return result, nil
}

func (r *repo) HasConnection(ctx context.Context, ownerID, targetID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserConnection{}).
		Where("user_id = ? AND connection_id = ?", ownerID, targetID).
		Count(&count).Error
	return count > 0, err
}

func (r *repo) AddConnection(ctx context.Context, ownerID, targetID uuid.UUID) error {
	edge := &model.UserConnection{
		UserID:       ownerID,
		ConnectionID: targetID,
		CreatedAt:    time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(edge).Error
}

func mapModelToDTO(u *model.User) *dto.UserRead {
	return &dto.UserRead{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Provider:  u.AuthProvider,
		Balance:   money.FromCents(u.BalanceCents),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
