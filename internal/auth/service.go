package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mrlokans/orgauth/internal/entities"
)

// Service implements authentication, session resolution and the
// organisation visibility rules on top of an IdentityStore.
type Service struct {
	store  IdentityStore
	hasher *Hasher
	tokens *TokenService
}

// NewService creates a new authentication service.
func NewService(store IdentityStore, hasher *Hasher, tokens *TokenService) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// Tokens exposes the token service used to mint access tokens.
func (s *Service) Tokens() *TokenService {
	return s.tokens
}

// RegisterInput holds the fields of a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
}

// Registration is the result of a successful sign-up.
type Registration struct {
	User         *entities.User
	Organisation *entities.Organisation
	AccessToken  string
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultOrganisationName is the name of the organisation created for a new user.
func DefaultOrganisationName(firstName string) string {
	return firstName + "'s Organisation"
}

// Authenticate checks credentials. An unknown email and a wrong password
// both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.store.FindUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.hasher.DummyVerify(password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken mints an access token for user with the default lifetime.
func (s *Service) IssueToken(user *entities.User) (string, error) {
	return s.tokens.Issue(user.UserID, user.Email, 0)
}

// Register creates the user, a default organisation and an admin
// membership in one transaction, then issues an access token.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Registration, error) {
	email := NormalizeEmail(in.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        in.Phone,
	}
	org := &entities.Organisation{
		Name: DefaultOrganisationName(in.FirstName),
	}

	err = s.store.WithinTransaction(ctx, func(tx IdentityStore) error {
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		if err := tx.InsertOrganisation(ctx, org); err != nil {
			return err
		}
		return tx.InsertMembership(ctx, &entities.Membership{
			UserID: user.UserID,
			OrgID:  org.OrgID,
			Role:   entities.MembershipRoleAdmin,
		})
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &Registration{User: user, Organisation: org, AccessToken: token}, nil
}

// Resolve turns a bearer token into the principal it names. Invalid tokens
// and principals that no longer exist both yield ErrUnauthenticated.
func (s *Service) Resolve(ctx context.Context, bearer string) (*entities.User, error) {
	identity, err := s.tokens.Verify(bearer)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.store.FindUserByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// SharesOrganisation reports whether viewer may see targetID: always for
// themselves, otherwise only when both belong to a common organisation.
func (s *Service) SharesOrganisation(ctx context.Context, viewer *entities.User, targetID string) (bool, error) {
	if viewer.UserID == targetID {
		return true, nil
	}

	viewerMemberships, err := s.store.ListMemberships(ctx, viewer.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(viewerMemberships) == 0 {
		return false, nil
	}

	orgIDs := make(map[string]struct{}, len(viewerMemberships))
	for _, m := range viewerMemberships {
		orgIDs[m.OrgID] = struct{}{}
	}

	targetMemberships, err := s.store.ListMemberships(ctx, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to list memberships: %w", err)
	}
	for _, m := range targetMemberships {
		if _, ok := orgIDs[m.OrgID]; ok {
			return true, nil
		}
	}
	return false, nil
}

// IsMemberOf reports whether viewer has any membership in orgID. The role
// is not considered.
func (s *Service) IsMemberOf(ctx context.Context, viewer *entities.User, orgID string) (bool, error) {
	_, err := s.store.FindMembership(ctx, viewer.UserID, orgID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to find membership: %w", err)
	}
	return true, nil
}

// GetVisibleUser returns targetID if viewer shares an organisation with it.
func (s *Service) GetVisibleUser(ctx context.Context, viewer *entities.User, targetID string) (*entities.User, error) {
	allowed, err := s.SharesOrganisation(ctx, viewer, targetID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrForbidden
	}
	if viewer.UserID == targetID {
		return viewer, nil
	}
	return s.store.FindUserByID(ctx, targetID)
}
