package http

import (
	"context"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/entities"
)

// Each controller depends on the narrow slice of the auth service it calls.
// *auth.Service satisfies all of them.

// AccountService registers and authenticates principals.
type AccountService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*auth.Registration, error)
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	IssueToken(user *entities.User) (string, error)
}

// UserDirectory looks up users subject to organisation visibility.
type UserDirectory interface {
	GetVisibleUser(ctx context.Context, viewer *entities.User, targetID string) (*entities.User, error)
}

// OrganisationService manages organisations and their members.
type OrganisationService interface {
	CreateOrganisation(ctx context.Context, creator *entities.User, name string, description *string) (*entities.Organisation, error)
	GetOrganisation(ctx context.Context, viewer *entities.User, orgID string) (*entities.Organisation, error)
	ListOrganisations(ctx context.Context, viewer *entities.User) ([]entities.Organisation, error)
	AddMember(ctx context.Context, orgID, userID string) (*entities.Membership, error)
	ListMembers(ctx context.Context, viewer *entities.User, orgID string) ([]entities.Membership, error)
}

var (
	_ AccountService      = (*auth.Service)(nil)
	_ UserDirectory       = (*auth.Service)(nil)
	_ OrganisationService = (*auth.Service)(nil)
)
