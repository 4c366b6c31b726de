package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/config"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/database/identity"
)

// CreateUserCommand registers a user from the command line, exactly as
// POST /auth/register would: with a default organisation and admin membership.
type CreateUserCommand struct {
	DatabasePath string
	FirstName    string
	LastName     string
	Email        string
	Password     string
	Phone        string
	BcryptCost   int
	Out          io.Writer
}

func NewCreateUserCommand() *CreateUserCommand {
	return &CreateUserCommand{Out: os.Stdout}
}

func (cmd *CreateUserCommand) ParseFlags(args []string) error {
	cfg := config.NewConfig()
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the SQLite database file")
	fs.StringVar(&cmd.FirstName, "first-name", "", "First name (required)")
	fs.StringVar(&cmd.LastName, "last-name", "", "Last name (required)")
	fs.StringVar(&cmd.Email, "email", "", "Email address (required)")
	fs.StringVar(&cmd.Phone, "phone", "", "Phone number")
	fs.IntVar(&cmd.BcryptCost, "cost", cfg.Auth.BcryptCost, "bcrypt cost")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s create-user -first-name <name> -last-name <name> -email <email> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "The password is read from the ORGAUTH_PASSWORD environment variable.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FirstName == "" || cmd.LastName == "" || cmd.Email == "" {
		return errors.New("flags -first-name, -last-name and -email are required")
	}
	if cmd.Password == "" {
		cmd.Password = os.Getenv("ORGAUTH_PASSWORD")
	}
	if cmd.Password == "" {
		return errors.New("ORGAUTH_PASSWORD is not set")
	}
	return nil
}

func (cmd *CreateUserCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath, database.WithLogLevel("warn"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Only the store and hasher are used; no token is printed.
	secret, err := auth.GenerateSecretKey()
	if err != nil {
		return err
	}
	tokens, err := auth.NewTokenService(config.Auth{SecretKey: secret, Algorithm: "HS256"})
	if err != nil {
		return err
	}
	service := auth.NewService(identity.NewStore(db.DB), auth.NewHasher(cmd.BcryptCost), tokens)

	reg, err := service.Register(context.Background(), auth.RegisterInput{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Email:     cmd.Email,
		Password:  cmd.Password,
		Phone:     cmd.Phone,
	})
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			return fmt.Errorf("a user with email %s already exists", auth.NormalizeEmail(cmd.Email))
		}
		return err
	}

	fmt.Fprintf(cmd.Out, "Created user %s (%s)\n", reg.User.Email, reg.User.UserID)
	fmt.Fprintf(cmd.Out, "Created organisation %q (%s)\n", reg.Organisation.Name, reg.Organisation.OrgID)
	return nil
}
