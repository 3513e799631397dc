// Package webapi exposes the HTTP surface: registration, login, profile,
// deposits, transfers and the connection graph. Handlers translate between
// JSON and the services; all business decisions live below.
package webapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jbaptiste/paybuddy/pkg/config"
	"github.com/jbaptiste/paybuddy/pkg/service/auth"
	"github.com/jbaptiste/paybuddy/pkg/service/transfer"
	"github.com/jbaptiste/paybuddy/pkg/service/user"
)

// NewApp builds the Fiber application with all routes registered.
func NewApp(
	userSvc *user.Service,
	transferSvc *transfer.Service,
	authSvc *auth.Service,
	cfg *config.App,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "paybuddy",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})

	AuthRoutes(app, authSvc)
	UserRoutes(app, userSvc, authSvc, cfg)
	AccountRoutes(app, userSvc, authSvc, cfg)
	TransferRoutes(app, transferSvc, authSvc, cfg)
	ConnectionRoutes(app, userSvc, authSvc, cfg)

	return app
}
