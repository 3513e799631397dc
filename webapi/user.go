package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jbaptiste/paybuddy/pkg/config"
	authsvc "github.com/jbaptiste/paybuddy/pkg/service/auth"
	usersvc "github.com/jbaptiste/paybuddy/pkg/service/user"
)

// NewUser is the registration payload.
type NewUser struct {
	Username string `json:"username" validate:"required,max=50,min=3"`
	Email    string `json:"email" validate:"required,email,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateUserInput carries the profile fields to change; empty fields are
// left untouched.
type UpdateUserInput struct {
	Username string `json:"username" validate:"omitempty,max=50,min=3"`
	Email    string `json:"email" validate:"omitempty,email,max=50"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

func UserRoutes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/user", CreateUser(userSvc))
	app.Get("/user/me", JwtProtected(cfg.Jwt), GetMe(userSvc, authSvc))
	app.Put("/user/me", JwtProtected(cfg.Jwt), UpdateMe(userSvc, authSvc))
}

// CreateUser registers a new local account.
func CreateUser(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[NewUser](c)
		if input == nil {
			return err
		}
		user, err := userSvc.Register(c.Context(), input.Username, input.Email, input.Password)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Couldn't create user", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Created user", toUserView(user))
	}
}

// GetMe returns the authenticated user's profile.
func GetMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		user, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "User lookup failed", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "User found", toUserView(user))
	}
}

// UpdateMe updates the authenticated user's profile.
func UpdateMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[UpdateUserInput](c)
		if input == nil {
			return err
		}
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		err = userSvc.UpdateProfile(c.Context(), userID, usersvc.UpdateProfileInput{
			Username: input.Username,
			Email:    input.Email,
			Password: input.Password,
		})
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to update user", err.Error())
		}
		updated, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Failed to get updated user", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "User updated successfully", toUserView(updated))
	}
}
