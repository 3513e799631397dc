package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/pkg/config"
	transferdomain "github.com/jbaptiste/paybuddy/pkg/domain/transfer"
	authsvc "github.com/jbaptiste/paybuddy/pkg/service/auth"
	transfersvc "github.com/jbaptiste/paybuddy/pkg/service/transfer"
)

// TransferInput is the transfer payload. The amount stays a string until
// the validator has parsed and bounded it.
type TransferInput struct {
	ReceiverID  string `json:"receiver_id" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required"`
	Description string `json:"description" validate:"max=255"`
}

func TransferRoutes(app *fiber.App, transferSvc *transfersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/transfer", JwtProtected(cfg.Jwt), CreateTransfer(transferSvc, authSvc))
	app.Get("/transfer", JwtProtected(cfg.Jwt), TransferHistory(transferSvc, authSvc))
}

// CreateTransfer moves money from the authenticated user to a receiver.
func CreateTransfer(transferSvc *transfersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferInput](c)
		if input == nil {
			return err
		}
		senderID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		receiverID, err := uuid.Parse(input.ReceiverID)
		if err != nil {
			return ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid receiver ID", err.Error())
		}
		created, err := transferSvc.Execute(c.Context(), senderID, transferdomain.Request{
			ReceiverID:  receiverID,
			Amount:      input.Amount,
			Description: input.Description,
		})
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "Transfer failed", err.Error())
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "Transfer successful", toTransactionView(created))
	}
}

// TransferHistory lists the authenticated user's sent transfers.
func TransferHistory(transferSvc *transfersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		senderID, err := currentUserID(c, authSvc)
		if err != nil {
			return err
		}
		entries, err := transferSvc.History(c.Context(), senderID)
		if err != nil {
			return ErrorResponseJSON(c, ErrorToStatusCode(err), "History lookup failed", err.Error())
		}
		views := make([]TransactionView, 0, len(entries))
		for _, e := range entries {
			views = append(views, toTransactionView(e))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Transfer history", views)
	}
}
