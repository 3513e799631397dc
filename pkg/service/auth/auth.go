// Package auth provides credential checking and JWT issuing. The web layer
// resolves the authenticated user id from the token once per request and
// passes it explicitly into every service call; no service ever consults
// ambient state to discover the caller.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/config"
	"github.com/jbaptiste/paybuddy/pkg/dto"
	"github.com/jbaptiste/paybuddy/pkg/repository"
	"github.com/jbaptiste/paybuddy/pkg/utils"
)

// ErrInvalidCredentials is returned for any login failure. The message is
// deliberately uniform to prevent account enumeration.
var ErrInvalidCredentials = errors.New("identifiants invalides")

// Service authenticates users and issues tokens.
type Service struct {
	uow    repository.UnitOfWork
	cfg    config.Jwt
	logger *slog.Logger
}

// New creates an auth service.
func New(uow repository.UnitOfWork, cfg config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login checks the identity (email or username) and password and returns
// the matching user. Federated accounts have no local password hash and
// therefore never pass the hash check.
func (s *Service) Login(
	ctx context.Context,
	identity, password string,
) (u *dto.UserRead, err error) {
	logger := s.logger.With("identity", identity)

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = users.GetByEmail(ctx, identity)
		if err != nil {
			return err
		}
		if u == nil {
			u, err = users.GetByUsername(ctx, identity)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Error("login lookup failed", "error", err)
		return nil, ErrInvalidCredentials
	}
	if u == nil || u.Password == "" || !utils.CheckPasswordHash(password, u.Password) {
		logger.Warn("login rejected")
		return nil, ErrInvalidCredentials
	}
	logger.Info("login successful", "userID", u.ID)
	return u, nil
}

// GenerateToken issues a signed JWT whose only identity content is the
// user id and display name.
func (s *Service) GenerateToken(u *dto.UserRead) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  u.ID.String(),
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.Expiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// CurrentUserID extracts the authenticated user id from a verified token.
func (s *Service) CurrentUserID(token *jwt.Token) (uuid.UUID, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, ErrInvalidCredentials
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrInvalidCredentials
	}
	return id, nil
}
