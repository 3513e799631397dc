package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jbaptiste/paybuddy/pkg/service/auth"
)

// LoginInput carries the credentials; identity is an email or a username.
type LoginInput struct {
	Identity string `json:"identity" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func AuthRoutes(app *fiber.App, authSvc *auth.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login authenticates a user and returns a JWT token.
func Login(authSvc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginInput](c)
		if input == nil {
			return err
		}
		user, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			// Uniform failure whatever the cause, to prevent enumeration.
			return ErrorResponseJSON(c, fiber.StatusUnauthorized, "Invalid identity or password", nil)
		}
		token, err := authSvc.GenerateToken(user)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", nil)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Success login", fiber.Map{"token": token})
	}
}
