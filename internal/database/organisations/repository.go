// Package organisations provides database operations for organisations.
package organisations

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

// CreateOrganisation inserts an organisation.
func (r *Repository) CreateOrganisation(ctx context.Context, org *entities.Organisation) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetOrganisationByID retrieves an organisation by ID.
func (r *Repository) GetOrganisationByID(ctx context.Context, id string) (*entities.Organisation, error) {
	var org entities.Organisation
	err := r.db.WithContext(ctx).Where("org_id = ?", id).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// GetOrganisationsByIDs retrieves the organisations with the given IDs,
// ordered by name. Unknown IDs are skipped.
func (r *Repository) GetOrganisationsByIDs(ctx context.Context, ids []string) ([]entities.Organisation, error) {
	orgs := []entities.Organisation{}
	if len(ids) == 0 {
		return orgs, nil
	}
	err := r.db.WithContext(ctx).Where("org_id IN ?", ids).Order("name ASC").Find(&orgs).Error
	return orgs, err
}
