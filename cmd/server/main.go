package main

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/jbaptiste/paybuddy/infra"
	infrarepo "github.com/jbaptiste/paybuddy/infra/repository"
	"github.com/jbaptiste/paybuddy/pkg/config"
	authsvc "github.com/jbaptiste/paybuddy/pkg/service/auth"
	transfersvc "github.com/jbaptiste/paybuddy/pkg/service/transfer"
	usersvc "github.com/jbaptiste/paybuddy/pkg/service/user"
	"github.com/jbaptiste/paybuddy/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	logger := infra.SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	userSvc := usersvc.New(uow, logger)
	transferSvc := transfersvc.New(uow, logger)
	authSvc := authsvc.New(uow, cfg.Jwt, logger)

	app := webapi.NewApp(userSvc, transferSvc, authSvc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return app.Listen(addr)
}
