package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/orgauth/internal/cli"
	"github.com/mrlokans/orgauth/internal/config"
	"github.com/mrlokans/orgauth/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	switch name {
	case "migrate":
		run(cli.NewMigrateCommand(), args)

	case "create-user":
		run(cli.NewCreateUserCommand(), args)

	case "version":
		fmt.Printf("%s (commit %s)\n", Version, Commit)

	case "-h", "--help", "help":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}
}

func run(cmd command, args []string) {
	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve        Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  migrate      Create or upgrade the database schema\n")
	fmt.Fprintf(os.Stderr, "  create-user  Register a user with a default organisation (password from ORGAUTH_PASSWORD)\n")
	fmt.Fprintf(os.Stderr, "  version      Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
