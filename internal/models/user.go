package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID       uint     `json:"-" gorm:"primaryKey"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:150"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:254"`
	Role     UserRole `json:"role" gorm:"not null;default:user;size:20"`

	// Profile info
	FirstName string `json:"first_name" gorm:"size:150"`
	LastName  string `json:"last_name" gorm:"size:150"`
	Bio       string `json:"bio"`

	// Status
	IsActive bool `json:"-" gorm:"not null;default:false"`
	// Superuser is an external privilege escalation flag; for authorization
	// purposes it is equivalent to the admin role.
	IsSuperuser bool `json:"-" gorm:"not null;default:false"`

	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
