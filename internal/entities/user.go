package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a principal: someone who can log in and belong to organisations.
type User struct {
	UserID       string    `gorm:"primaryKey;size:36" json:"userId"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Phone        string    `gorm:"size:50" json:"phone"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a fresh identifier when the caller did not set one.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.UserID == "" {
		u.UserID = uuid.NewString()
	}
	return nil
}

// DisplayName returns "First Last".
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
