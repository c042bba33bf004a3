package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is an account holder. Name uniqueness is enforced at query time
// among live rows only, so a deleted user's name can be reused.
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"index;size:100" json:"name"`
	PasswordHash string         `gorm:"size:256" json:"-"` // salt$digest, hidden from JSON
	IsPublic     bool           `gorm:"default:false" json:"is_public"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// AuthUser is the public-safe view of a user. It is what handlers
// return and what the identity cookie carries.
type AuthUser struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	IsPublic bool   `json:"is_public"`
}

// AuthView returns the public-safe view of the user.
func (u *User) AuthView() *AuthUser {
	return &AuthUser{
		ID:       u.ID,
		Name:     u.Name,
		IsPublic: u.IsPublic,
	}
}
