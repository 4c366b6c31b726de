package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MembershipRole string

const (
	MembershipRoleAdmin  MembershipRole = "admin"
	MembershipRoleMember MembershipRole = "member"
)

// Organisation is a tenant that groups users.
type Organisation struct {
	OrgID       string    `gorm:"primaryKey;size:36" json:"orgId"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Organisation) TableName() string {
	return "organisations"
}

func (o *Organisation) BeforeCreate(_ *gorm.DB) error {
	if o.OrgID == "" {
		o.OrgID = uuid.NewString()
	}
	return nil
}

// Membership links a user to an organisation. A (user, organisation) pair
// is unique.
type Membership struct {
	OrgUserID string         `gorm:"primaryKey;size:36" json:"orgUserId"`
	UserID    string         `gorm:"size:36;not null;uniqueIndex:idx_membership_user_org,priority:1" json:"userId"`
	OrgID     string         `gorm:"size:36;not null;uniqueIndex:idx_membership_user_org,priority:2;index" json:"orgId"`
	Role      MembershipRole `gorm:"size:20;not null;default:member" json:"role"`
	CreatedAt time.Time      `json:"-"`
}

func (Membership) TableName() string {
	return "organisation_users"
}

func (m *Membership) BeforeCreate(_ *gorm.DB) error {
	if m.OrgUserID == "" {
		m.OrgUserID = uuid.NewString()
	}
	if m.Role == "" {
		m.Role = MembershipRoleMember
	}
	return nil
}
