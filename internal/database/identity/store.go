// Package identity implements auth.IdentityStore on top of the users,
// organisations and memberships repositories.
package identity

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/orgauth/internal/auth"
	"github.com/mrlokans/orgauth/internal/database"
	"github.com/mrlokans/orgauth/internal/database/memberships"
	"github.com/mrlokans/orgauth/internal/database/organisations"
	"github.com/mrlokans/orgauth/internal/database/users"
	"github.com/mrlokans/orgauth/internal/entities"
)

var _ auth.IdentityStore = (*Store)(nil)

// Store is the gorm-backed identity store.
type Store struct {
	db            *gorm.DB
	users         *users.Repository
	organisations *organisations.Repository
	memberships   *memberships.Repository
}

// NewStore creates a store whose repositories share db.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		users:         users.NewRepository(db),
		organisations: organisations.NewRepository(db),
		memberships:   memberships.NewRepository(db),
	}
}

// translate maps gorm errors onto the auth error taxonomy.
func translate(err error, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case database.IsNotFound(err):
		return auth.ErrNotFound
	case duplicate != nil && database.IsUniqueViolation(err):
		return duplicate
	default:
		return err
	}
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	return user, translate(err, nil)
}

func (s *Store) FindUserByID(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	return user, translate(err, nil)
}

func (s *Store) ListMemberships(ctx context.Context, userID string) ([]entities.Membership, error) {
	list, err := s.memberships.GetMembershipsForUser(ctx, userID)
	return list, translate(err, nil)
}

func (s *Store) FindMembership(ctx context.Context, userID, orgID string) (*entities.Membership, error) {
	membership, err := s.memberships.GetMembership(ctx, userID, orgID)
	return membership, translate(err, nil)
}

func (s *Store) ListMembers(ctx context.Context, orgID string) ([]entities.Membership, error) {
	list, err := s.memberships.GetMembershipsForOrganisation(ctx, orgID)
	return list, translate(err, nil)
}

func (s *Store) FindOrganisationByID(ctx context.Context, orgID string) (*entities.Organisation, error) {
	org, err := s.organisations.GetOrganisationByID(ctx, orgID)
	return org, translate(err, nil)
}

func (s *Store) ListOrganisationsByIDs(ctx context.Context, orgIDs []string) ([]entities.Organisation, error) {
	orgs, err := s.organisations.GetOrganisationsByIDs(ctx, orgIDs)
	return orgs, translate(err, nil)
}

func (s *Store) InsertUser(ctx context.Context, user *entities.User) error {
	return translate(s.users.CreateUser(ctx, user), auth.ErrDuplicateEmail)
}

func (s *Store) InsertOrganisation(ctx context.Context, org *entities.Organisation) error {
	return translate(s.organisations.CreateOrganisation(ctx, org), nil)
}

func (s *Store) InsertMembership(ctx context.Context, membership *entities.Membership) error {
	return translate(s.memberships.CreateMembership(ctx, membership), auth.ErrDuplicateMembership)
}

// DeleteUser removes a user together with their memberships.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := memberships.NewRepository(tx).DeleteMembershipsForUser(ctx, id); err != nil {
			return err
		}
		return users.NewRepository(tx).DeleteUser(ctx, id)
	})
}

func (s *Store) WithinTransaction(ctx context.Context, fn func(store auth.IdentityStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
