package auth

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/mrlokans/orgauth/internal/entities"
)

// CreateOrganisation creates an organisation with creator as its admin.
func (s *Service) CreateOrganisation(ctx context.Context, creator *entities.User, name string, description *string) (*entities.Organisation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOrganisationNameRequired
	}

	org := &entities.Organisation{
		Name:        name,
		Description: description,
	}

	err := s.store.WithinTransaction(ctx, func(tx IdentityStore) error {
		if err := tx.InsertOrganisation(ctx, org); err != nil {
			return err
		}
		return tx.InsertMembership(ctx, &entities.Membership{
			UserID: creator.UserID,
			OrgID:  org.OrgID,
			Role:   entities.MembershipRoleAdmin,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create organisation: %w", err)
	}
	return org, nil
}

// GetOrganisation returns orgID if viewer is a member of it.
func (s *Service) GetOrganisation(ctx context.Context, viewer *entities.User, orgID string) (*entities.Organisation, error) {
	member, err := s.IsMemberOf(ctx, viewer, orgID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}
	return s.store.FindOrganisationByID(ctx, orgID)
}

// ListOrganisations returns every organisation viewer belongs to, by name.
func (s *Service) ListOrganisations(ctx context.Context, viewer *entities.User) ([]entities.Organisation, error) {
	memberships, err := s.store.ListMemberships(ctx, viewer.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return []entities.Organisation{}, nil
	}

	orgIDs := make([]string, 0, len(memberships))
	for _, m := range memberships {
		orgIDs = append(orgIDs, m.OrgID)
	}

	orgs, err := s.store.ListOrganisationsByIDs(ctx, orgIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list organisations: %w", err)
	}
	sort.SliceStable(orgs, func(i, j int) bool {
		return orgs[i].Name < orgs[j].Name
	})
	return orgs, nil
}

// ListMembers returns the memberships of orgID if viewer is a member of it.
func (s *Service) ListMembers(ctx context.Context, viewer *entities.User, orgID string) ([]entities.Membership, error) {
	member, err := s.IsMemberOf(ctx, viewer, orgID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, ErrNotMember
	}
	members, err := s.store.ListMembers(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

// AddMember adds userID to orgID with the member role. Both must exist.
func (s *Service) AddMember(ctx context.Context, orgID, userID string) (*entities.Membership, error) {
	if _, err := s.store.FindOrganisationByID(ctx, orgID); err != nil {
		return nil, err
	}
	if _, err := s.store.FindUserByID(ctx, userID); err != nil {
		return nil, err
	}

	membership := &entities.Membership{
		UserID: userID,
		OrgID:  orgID,
		Role:   entities.MembershipRoleMember,
	}
	if err := s.store.InsertMembership(ctx, membership); err != nil {
		if errors.Is(err, ErrDuplicateMembership) {
			return nil, ErrDuplicateMembership
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}
	return membership, nil
}
