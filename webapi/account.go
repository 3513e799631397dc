package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jbaptiste/paybuddy/pkg/config"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	authsvc "github.com/jbaptiste/paybuddy/pkg/service/auth"
	usersvc "github.com/jbaptiste/paybuddy/pkg/service/user"
)

// DepositInput carries the amount to credit, as a decimal string so the
// boundary can reject excess precision instead of silently rounding it.
type DepositInput struct {
	Amount string `json:"amount" validate:"required"`
}

func AccountRoutes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/account/deposit", JwtProtected(cfg.Jwt), Deposit(userSvc, authSvc))
	app.Get("/account/balance", JwtProtected(cfg.Jwt), Balance(userSvc, authSvc))
}

// Deposit credits the authenticated user's balance from an external source.
func Deposit(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[DepositInput](c)
		if input == nil {
			return err
		}
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		amount, err := money.Parse(input.Amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Deposit failed", err.Error())
		}
		balance, err := userSvc.Deposit(c.Context(), userID, amount)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Deposit failed", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", fiber.Map{
			"balance": balance.Format(),
		})
	}
}

// Balance returns the authenticated user's current balance.
func Balance(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		balance, err := userSvc.Balance(c.Context(), userID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Balance lookup failed", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Balance", fiber.Map{
			"balance": balance.Format(),
		})
	}
}
