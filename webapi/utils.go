package webapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	transferdomain "github.com/jbaptiste/paybuddy/pkg/domain/transfer"
	userdomain "github.com/jbaptiste/paybuddy/pkg/domain/user"
	"github.com/jbaptiste/paybuddy/pkg/service/auth"
)

// Response is the standard envelope for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`     // A URI reference that identifies the problem type
	Title    string `json:"title"`              // Short, human-readable summary
	Status   int    `json:"status"`             // HTTP status code
	Detail   string `json:"detail,omitempty"`   // Human-readable explanation
	Instance string `json:"instance,omitempty"` // URI reference that identifies the specific occurrence
	Errors   any    `json:"errors,omitempty"`   // Optional: additional error details
}

// ErrorResponseJSON writes a response following RFC 9457 Problem Details.
func ErrorResponseJSON(
	c *fiber.Ctx,
	status int,
	title string,
	detail any,
) error {
	pd := ProblemDetails{
		Type:   "about:blank",
		Title:  title,
		Status: status,
	}
	if detail != nil {
		if s, ok := detail.(string); ok {
			pd.Detail = s
		} else {
			pd.Errors = detail
		}
	}
	pd.Instance = c.OriginalURL()
	c.Set(fiber.HeaderContentType, "application/problem+json")

	return c.Status(status).JSON(pd)
}

// SuccessResponseJSON writes the standard success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, userdomain.ErrConnectionNotFound),
		errors.Is(err, transferdomain.ErrReceiverNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, userdomain.ErrUsernameTaken),
		errors.Is(err, userdomain.ErrEmailTaken),
		errors.Is(err, userdomain.ErrAlreadyConnected):
		return fiber.StatusConflict
	case errors.Is(err, transferdomain.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, money.ErrInvalidAmount),
		errors.Is(err, money.ErrTooManyDecimals),
		errors.Is(err, userdomain.ErrDepositNotPositive),
		errors.Is(err, userdomain.ErrSelfConnection),
		errors.Is(err, userdomain.ErrMissingUsername),
		errors.Is(err, userdomain.ErrMissingEmail),
		errors.Is(err, userdomain.ErrMissingPassword),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrNothingToUpdate),
		errors.Is(err, userdomain.ErrEmailLockedForOAuth),
		errors.Is(err, userdomain.ErrPasswordLockedForOAuth),
		errors.Is(err, transferdomain.ErrMissingReceiver),
		errors.Is(err, transferdomain.ErrMissingAmount),
		errors.Is(err, transferdomain.ErrSelfTransfer):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body and validates it using
// go-playground/validator. On failure the error response is already
// written and the returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid request body", err.Error())
	}
	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return nil, ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
	}
	return &input, nil
}
