package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/config"
	"github.com/jbaptiste/paybuddy/pkg/service/auth"

	jwtware "github.com/gofiber/contrib/jwt"
)

// JwtProtected guards a route with bearer-token authentication. The
// verified token lands in c.Locals("user").
func JwtProtected(cfg config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return ErrorResponseJSON(c, fiber.StatusBadRequest, "Missing or malformed JWT", nil)
	}
	return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Invalid or expired JWT", nil)
}

// currentUserID resolves the authenticated user id from the request token.
// On failure the error response is already written and uuid.Nil returned.
func currentUserID(c *fiber.Ctx, authSvc *auth.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusUnauthorized, "unauthorized", "missing user context")
	}
	userID, err := authSvc.CurrentUserID(token)
	if err != nil {
		return uuid.Nil, ErrorResponseJSON(c, fiber.StatusUnauthorized, "unauthorized", err.Error())
	}
	return userID, nil
}
