// Command seed_demo creates a demo database with a few users sharing organisations.
// Usage: go run cmd/seed_demo/main.go [-db path/to/demo.db] [-password secret]
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/config"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/database/identity"
	"github.com/mrlokans/orgauth/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

type demoUser struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

type demoOrganisation struct {
	Owner       string
	Name        string
	Description string
	Members     []string
}

var demoUsers = []demoUser{
	{"Ada", "Lovelace", "ada@example.com", "+44 20 7946 0001"},
	{"Alan", "Turing", "alan@example.com", "+44 20 7946 0002"},
	{"Grace", "Hopper", "grace@example.com", ""},
	{"Edsger", "Dijkstra", "edsger@example.com", ""},
}

var demoOrganisations = []demoOrganisation{
	{
		Owner:       "ada@example.com",
		Name:        "Analytical Engines",
		Description: "Mechanical computation research group",
		Members:     []string{"alan@example.com", "grace@example.com"},
	},
	{
		Owner:       "grace@example.com",
		Name:        "Compiler Guild",
		Description: "Friends of readable programs",
		Members:     []string{"edsger@example.com"},
	},
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	password := flag.String("password", "demo-password", "password shared by every demo account")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath, database.WithLogLevel("warn"))
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	secret, err := auth.GenerateSecretKey()
	if err != nil {
		log.Fatalf("Failed to generate secret: %v", err)
	}
	tokens, err := auth.NewTokenService(config.Auth{SecretKey: secret})
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}
	service := auth.NewService(identity.NewStore(db.DB), auth.NewHasher(4), tokens)

	ctx := context.Background()
	users := createUsers(ctx, service, *password)
	createOrganisations(ctx, service, users)

	counts, err := db.Counts(ctx)
	if err != nil {
		log.Fatalf("Failed to count rows: %v", err)
	}
	log.Printf("Demo database generated: %d users, %d organisations, %d memberships",
		counts.Users, counts.Organisations, counts.Memberships)
}

func createUsers(ctx context.Context, service *auth.Service, password string) map[string]*entities.User {
	users := make(map[string]*entities.User)
	for _, u := range demoUsers {
		reg, err := service.Register(ctx, auth.RegisterInput{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			Password:  password,
			Phone:     u.Phone,
		})
		if err != nil {
			log.Printf("Failed to register %s: %v", u.Email, err)
			continue
		}
		users[u.Email] = reg.User
		log.Printf("Registered %s %s <%s>", u.FirstName, u.LastName, u.Email)
	}
	return users
}

func createOrganisations(ctx context.Context, service *auth.Service, users map[string]*entities.User) {
	for _, o := range demoOrganisations {
		owner, ok := users[o.Owner]
		if !ok {
			continue
		}
		description := o.Description
		org, err := service.CreateOrganisation(ctx, owner, o.Name, &description)
		if err != nil {
			log.Printf("Failed to create organisation %s: %v", o.Name, err)
			continue
		}

		for _, email := range o.Members {
			member, ok := users[email]
			if !ok {
				continue
			}
			if _, err := service.AddMember(ctx, org.OrgID, member.UserID); err != nil {
				log.Printf("Failed to add %s to %s: %v", email, o.Name, err)
			}
		}
		log.Printf("Saved: %s (%d members)", o.Name, len(o.Members)+1)
	}
}
