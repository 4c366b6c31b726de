// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, maintenance helpers
//	├── errors.go        # Driver error classification
//	├── users/           # User records
//	├── organisations/   # Organisation records
//	├── memberships/     # User to organisation links
//	└── identity/        # auth.IdentityStore built from the three above
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	db, err := database.NewDatabase("./orgauth.db")
//
//	usersRepo := users.NewRepository(db.DB)
//	user, err := usersRepo.GetUserByEmail(ctx, "john@example.com")
//
// The identity package composes the repositories and adds transactions:
//
//	store := identity.NewStore(db.DB)
//	err := store.WithinTransaction(ctx, func(tx auth.IdentityStore) error { ... })
//
// Repositories return gorm errors unchanged; identity.Store translates them
// into the auth package's sentinel errors.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in Models() so AutoMigrate picks it up
package database
