// Command cli is a small operator console for a running database:
// register users, credit balances, move money and inspect state without
// going through the HTTP surface.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/jbaptiste/paybuddy/infra"
	infrarepo "github.com/jbaptiste/paybuddy/infra/repository"
	"github.com/jbaptiste/paybuddy/pkg/config"
	"github.com/jbaptiste/paybuddy/pkg/domain/money"
	transferdomain "github.com/jbaptiste/paybuddy/pkg/domain/transfer"
	transfersvc "github.com/jbaptiste/paybuddy/pkg/service/transfer"
	usersvc "github.com/jbaptiste/paybuddy/pkg/service/user"
	"golang.org/x/term"
)

func usage() {
	fmt.Println("Usage: cli <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  register <username> <email>            create a user (password prompted)")
	fmt.Println("  deposit <user_id> <amount>             credit a balance")
	fmt.Println("  balance <user_id>                      show a balance")
	fmt.Println("  transfer <sender_id> <receiver_id> <amount> [description]")
	fmt.Println("  connect <owner_id> <target_email>      add a payee contact")
	fmt.Println("  connections <owner_id>                 list payee contacts")
	fmt.Println("  history <sender_id>                    list sent transfers")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load(".env")
	if err != nil {
		color.Red("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger := infra.SetupLogger(cfg.Log)
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	uow := infrarepo.NewUoW(db)
	userSvc := usersvc.New(uow, logger)
	transferSvc := transfersvc.New(uow, logger)

	ctx := context.Background()
	if err := dispatch(ctx, os.Args[1], os.Args[2:], userSvc, transferSvc); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func dispatch(
	ctx context.Context,
	cmd string,
	args []string,
	userSvc *usersvc.Service,
	transferSvc *transfersvc.Service,
) error {
	switch cmd {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: register <username> <email>")
		}
		password, err := promptPassword()
		if err != nil {
			return err
		}
		u, err := userSvc.Register(ctx, args[0], args[1], password)
		if err != nil {
			return err
		}
		color.Green("User created: %s (%s)", u.ID, u.Username)
		return nil

	case "deposit":
		if len(args) < 2 {
			return fmt.Errorf("usage: deposit <user_id> <amount>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		f, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		amount, err := money.FromFloat(f)
		if err != nil {
			return err
		}
		balance, err := userSvc.Deposit(ctx, id, amount)
		if err != nil {
			return err
		}
		color.Green("Deposited. New balance: %s", balance)
		return nil

	case "balance":
		if len(args) < 1 {
			return fmt.Errorf("usage: balance <user_id>")
		}
		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		balance, err := userSvc.Balance(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("Balance: %s\n", balance)
		return nil

	case "transfer":
		if len(args) < 3 {
			return fmt.Errorf("usage: transfer <sender_id> <receiver_id> <amount> [description]")
		}
		senderID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid sender id: %w", err)
		}
		receiverID, err := uuid.Parse(args[1])
		if err != nil {
			return fmt.Errorf("invalid receiver id: %w", err)
		}
		description := ""
		if len(args) > 3 {
			description = args[3]
		}
		created, err := transferSvc.Execute(ctx, senderID, transferdomain.Request{
			ReceiverID:  receiverID,
			Amount:      args[2],
			Description: description,
		})
		if err != nil {
			return err
		}
		color.Green("Transfer #%d: %s to %s", created.ID, created.Amount, created.ReceiverUsername)
		return nil

	case "connect":
		if len(args) < 2 {
			return fmt.Errorf("usage: connect <owner_id> <target_email>")
		}
		ownerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid owner id: %w", err)
		}
		if err := userSvc.AddConnection(ctx, ownerID, args[1]); err != nil {
			return err
		}
		color.Green("Connection added")
		return nil

	case "connections":
		if len(args) < 1 {
			return fmt.Errorf("usage: connections <owner_id>")
		}
		ownerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid owner id: %w", err)
		}
		contacts, err := userSvc.ListConnections(ctx, ownerID)
		if err != nil {
			return err
		}
		for _, contact := range contacts {
			fmt.Printf("%s  %s <%s>\n", contact.ID, contact.Username, contact.Email)
		}
		return nil

	case "history":
		if len(args) < 1 {
			return fmt.Errorf("usage: history <sender_id>")
		}
		senderID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid sender id: %w", err)
		}
		entries, err := transferSvc.History(ctx, senderID)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("#%d  %s  to %s  %s\n", e.ID, e.Amount, e.ReceiverUsername, e.Description)
		}
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
