// Package memberships provides database operations for the links between
// users and organisations.
package memberships

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/orgauth/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateMembership inserts a membership. The (user, organisation) pair is
// unique, so a second insert fails with a constraint error.
func (r *Repository) CreateMembership(ctx context.Context, membership *entities.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// GetMembership retrieves the membership of userID in orgID.
func (r *Repository) GetMembership(ctx context.Context, userID, orgID string) (*entities.Membership, error) {
	var membership entities.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND org_id = ?", userID, orgID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetMembershipsForUser lists every membership of a user, oldest first.
func (r *Repository) GetMembershipsForUser(ctx context.Context, userID string) ([]entities.Membership, error) {
	var memberships []entities.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

// GetMembershipsForOrganisation lists the members of an organisation.
func (r *Repository) GetMembershipsForOrganisation(ctx context.Context, orgID string) ([]entities.Membership, error) {
	var memberships []entities.Membership
	err := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("created_at ASC").
		Find(&memberships).Error
	return memberships, err
}

// DeleteMembershipsForUser removes all memberships of a user.
func (r *Repository) DeleteMembershipsForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.Membership{}).Error
}
