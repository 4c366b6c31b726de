package auth

import (
	"context"

	"github.com/mrlokans/orgauth/internal/entities"
)

// IdentityStore is the persistence the auth core needs. Lookups that find
// nothing return ErrNotFound. InsertUser returns ErrDuplicateEmail and
// InsertMembership returns ErrDuplicateMembership on unique conflicts.
type IdentityStore interface {
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByID(ctx context.Context, id string) (*entities.User, error)
	ListMemberships(ctx context.Context, userID string) ([]entities.Membership, error)
	FindMembership(ctx context.Context, userID, orgID string) (*entities.Membership, error)
	ListMembers(ctx context.Context, orgID string) ([]entities.Membership, error)
	FindOrganisationByID(ctx context.Context, orgID string) (*entities.Organisation, error)
	ListOrganisationsByIDs(ctx context.Context, orgIDs []string) ([]entities.Organisation, error)

	InsertUser(ctx context.Context, user *entities.User) error
	InsertOrganisation(ctx context.Context, org *entities.Organisation) error
	InsertMembership(ctx context.Context, membership *entities.Membership) error

	// WithinTransaction runs fn against a store bound to a single
	// transaction. Returning an error from fn rolls everything back.
	WithinTransaction(ctx context.Context, fn func(store IdentityStore) error) error
}
