package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jbaptiste/paybuddy/pkg/config"
	authsvc "github.com/jbaptiste/paybuddy/pkg/service/auth"
	usersvc "github.com/jbaptiste/paybuddy/pkg/service/user"
)

// NewConnection names the payee contact to add, by email.
type NewConnection struct {
	Email string `json:"email" validate:"required,email"`
}

func ConnectionRoutes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/connections", JwtProtected(cfg.Jwt), AddConnection(userSvc, authSvc))
	app.Get("/connections", JwtProtected(cfg.Jwt), ListConnections(userSvc, authSvc))
}

// AddConnection adds the user behind the given email to the authenticated
// user's payee contacts.
func AddConnection(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[NewConnection](c)
		if input == nil {
			return err
		}
		ownerID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		if err := userSvc.AddConnection(c.Context(), ownerID, input.Email); err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Couldn't add connection", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Connection added", nil)
	}
}

// ListConnections returns the authenticated user's payee contacts in the
// order they were added.
func ListConnections(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		contacts, err := userSvc.ListConnections(c.Context(), ownerID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Couldn't list connections", err.Error())
		}
		views := make([]ConnectionView, 0, len(contacts))
		for _, ct := range contacts {
			views = append(views, toConnectionView(ct))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Connections", views)
	}
}
