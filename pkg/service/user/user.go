// Package user provides business logic for registration, profile updates,
// deposits and the connection graph.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/domain/common"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	userdomain "github.com/jbaptiste/paybuddy/pkg/domain/user"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/repository"
	"github.com/jbaptiste/paybuddy/pkg/utils"
)

// Service provides user management operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a user service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Register creates a local account. Usernames and emails are globally
// unique; when the email already belongs to a federated account, that
// account gains local credentials instead of conflicting.
func (s *Service) Register(
	ctx context.Context,
	username, email, password string,
) (u *dto.UserRead, err error) {
	logger := s.logger.With("email", email, "username", username)
	logger.Info("registering user")

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}

		byUsername, err := users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if byUsername != nil {
			return userdomain.ErrUsernameTaken
		}

		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			if userdomain.AuthProvider(existing.Provider).IsLocal() {
				return userdomain.ErrEmailTaken
			}
			// Federated account claims local credentials.
			logger.Info("attaching local credentials to federated account")
			hash, err := utils.HashPassword(password)
			if err != nil {
				return err
			}
			provider := string(userdomain.ProviderLocal)
			if err := users.Update(ctx, existing.ID, &dto.UserUpdate{
				Username: &username,
				Password: &hash,
				Provider: &provider,
			}); err != nil {
				return err
			}
			u, err = users.Get(ctx, existing.ID)
			return err
		}

		entity, err := userdomain.New(username, email, password)
		if err != nil {
			return err
		}
		if err := users.Create(ctx, &dto.UserCreate{
			ID:       entity.ID,
			Username: entity.Username,
			Email:    entity.Email,
			Password: entity.PasswordHash,
			Provider: string(entity.Provider),
		}); err != nil {
			return err
		}
		u, err = users.Get(ctx, entity.ID)
		return err
	})
	if err != nil {
		u = nil
		err = classify(err)
		logger.Warn("registration failed", "reason", err.Error())
		return
	}
	logger.Info("user registered", "userID", u.ID)
	return
}

// Get returns a user by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (u *dto.UserRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.Get(ctx, id)
		if err != nil {
			return err
		}
		if u == nil {
			return userdomain.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		u = nil
		err = classify(err)
	}
	return
}

// UpdateProfileInput carries the profile fields to change; empty fields
// are left untouched.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

// UpdateProfile updates the profile of the given user. Local accounts may
// change email, username and password; federated accounts may only change
// their username.
func (s *Service) UpdateProfile(
	ctx context.Context,
	id uuid.UUID,
	input UpdateProfileInput,
) error {
	logger := s.logger.With("userID", id)
	logger.Info("updating profile")

	if err := validateProfileInput(input); err != nil {
		return err
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		current, err := users.Get(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return userdomain.ErrUserNotFound
		}

		if err := checkProfileConflicts(ctx, users, input, current); err != nil {
			return err
		}

		update, err := buildProfileUpdate(input, current)
		if err != nil {
			return err
		}
		if update == nil {
			return nil // nothing actually changes
		}
		return users.Update(ctx, id, update)
	})
	if err != nil {
		err = classify(err)
		logger.Warn("profile update failed", "reason", err.Error())
		return err
	}
	logger.Info("profile updated")
	return nil
}

func validateProfileInput(input UpdateProfileInput) error {
	if input.Username == "" && input.Email == "" && input.Password == "" {
		return userdomain.ErrNothingToUpdate
	}
	if input.Email != "" && !utils.IsEmail(input.Email) {
		return userdomain.ErrInvalidEmail
	}
	if input.Username != "" && strings.TrimSpace(input.Username) == "" {
		return userdomain.ErrMissingUsername
	}
	if input.Password != "" && strings.TrimSpace(input.Password) == "" {
		return userdomain.ErrMissingPassword
	}
	return nil
}

func checkProfileConflicts(
	ctx context.Context,
	users repository.UserRepository,
	input UpdateProfileInput,
	current *dto.UserRead,
) error {
	if input.Email != "" && input.Email != current.Email {
		other, err := users.GetByEmail(ctx, input.Email)
		if err != nil {
			return err
		}
		if other != nil {
			return &userdomain.EmailConflictError{Email: input.Email}
		}
	}
	if input.Username != "" && input.Username != current.Username {
		other, err := users.GetByUsername(ctx, input.Username)
		if err != nil {
			return err
		}
		if other != nil {
			return &userdomain.UsernameConflictError{Username: input.Username}
		}
	}
	return nil
}

func buildProfileUpdate(
	input UpdateProfileInput,
	current *dto.UserRead,
) (*dto.UserUpdate, error) {
	local := userdomain.AuthProvider(current.Provider).IsLocal()
	update := &dto.UserUpdate{}
	changed := false

	if input.Email != "" && input.Email != current.Email {
		if !local {
			return nil, userdomain.ErrEmailLockedForOAuth
		}
		update.Email = &input.Email
		changed = true
	}
	if input.Password != "" && !utils.CheckPasswordHash(input.Password, current.Password) {
		if !local {
			return nil, userdomain.ErrPasswordLockedForOAuth
		}
		hash, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		update.Password = &hash
		changed = true
	}
	if input.Username != "" && input.Username != current.Username {
		update.Username = &input.Username
		changed = true
	}
	if !changed {
		return nil, nil
	}
	return update, nil
}

// Deposit credits the user's balance. Callers construct the amount at
// their boundary (money.Parse or money.FromFloat), so malformed input and
// excess decimals never reach this far. Returns the new balance.
func (s *Service) Deposit(
	ctx context.Context,
	id uuid.UUID,
	amount money.Money,
) (newBalance money.Money, err error) {
	logger := s.logger.With("userID", id)

	if !amount.IsPositive() {
		return money.Zero(), userdomain.ErrDepositNotPositive
	}

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		current, err := users.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return userdomain.ErrUserNotFound
		}
		newBalance = current.Balance.Add(amount)
		return users.UpdateBalance(ctx, id, newBalance)
	})
	if err != nil {
		err = classify(err)
		logger.Warn("deposit failed", "reason", err.Error())
		return money.Zero(), err
	}
	logger.Info("deposit committed", "amount", amount, "balance", newBalance)
	return
}

// Balance returns the user's current balance.
func (s *Service) Balance(ctx context.Context, id uuid.UUID) (money.Money, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return money.Zero(), err
	}
	return u.Balance, nil
}

// AddConnection records that the owner added the user behind targetEmail
// as a payee contact. The edge is directed: only the owner's contact list
// grows.
func (s *Service) AddConnection(
	ctx context.Context,
	ownerID uuid.UUID,
	targetEmail string,
) error {
	logger := s.logger.With("ownerID", ownerID, "targetEmail", targetEmail)

	if strings.TrimSpace(targetEmail) == "" {
		return userdomain.ErrMissingEmail
	}

	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return userdomain.ErrUserNotFound
		}
		if owner.Email == targetEmail {
			return userdomain.ErrSelfConnection
		}

		target, err := users.GetByEmail(ctx, targetEmail)
		if err != nil {
			return err
		}
		if target == nil {
			return &userdomain.ConnectionTargetNotFoundError{Email: targetEmail}
		}

		already, err := users.HasConnection(ctx, ownerID, target.ID)
		if err != nil {
			return err
		}
		if already {
			return &userdomain.AlreadyConnectedError{
				Email:    targetEmail,
				Username: target.Username,
			}
		}
		return users.AddConnection(ctx, ownerID, target.ID)
	})
	if err != nil {
		err = classify(err)
		logger.Warn("add connection failed", "reason", err.Error())
		return err
	}
	logger.Info("connection added")
	return nil
}

// ListConnections returns the owner's contacts in insertion order.
func (s *Service) ListConnections(
	ctx context.Context,
	ownerID uuid.UUID,
) (contacts []*dto.ConnectionRead, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		owner, err := users.Get(ctx, ownerID)
		if err != nil {
			return err
		}
		if owner == nil {
			return userdomain.ErrUserNotFound
		}
		contacts, err = users.ListConnections(ctx, ownerID)
		return err
	})
	if err != nil {
		contacts = nil
		err = classify(err)
	}
	return
}

// businessErrs are returned to the caller verbatim; anything else is a
// storage failure and is wrapped so driver detail never reaches the user.
var businessErrs = []error{
	userdomain.ErrUserNotFound,
	userdomain.ErrUsernameTaken,
	userdomain.ErrEmailTaken,
	userdomain.ErrMissingUsername,
	userdomain.ErrMissingEmail,
	userdomain.ErrMissingPassword,
	userdomain.ErrSelfConnection,
	userdomain.ErrConnectionNotFound,
	userdomain.ErrAlreadyConnected,
	userdomain.ErrEmailLockedForOAuth,
	userdomain.ErrPasswordLockedForOAuth,
	userdomain.ErrNothingToUpdate,
	userdomain.ErrInvalidEmail,
	userdomain.ErrDepositNotPositive,
}

func classify(err error) error {
	for _, business := range businessErrs {
		if errors.Is(err, business) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", common.ErrPersistence, err)
}
