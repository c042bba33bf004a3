// Package users provides database operations for user accounts.
//
// All lookups exclude soft-deleted rows (gorm's DeletedAt scope), so
// "exists" always means "exists and is not deleted".
package users

import (
	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user with the given name and password hash.
// New accounts start private.
func (r *Repository) Create(name, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Name:         name,
		PasswordHash: passwordHash,
		IsPublic:     false,
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// GetByID retrieves a live user by ID, including the password hash.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByName retrieves a live user by name, including the password hash.
func (r *Repository) GetByName(name string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("name = ?", name).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// NameTaken reports whether a live user other than excludeID already
// uses the given name. Pass excludeID 0 to check all live users.
func (r *Repository) NameTaken(name string, excludeID uint) (bool, error) {
	query := r.db.Model(&entities.User{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdatePassword replaces the stored password hash.
func (r *Repository) UpdatePassword(id uint, passwordHash string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

// UpdateName replaces the username.
func (r *Repository) UpdateName(id uint, name string) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).
		Update("name", name).Error
}

// UpdateVisibility sets the profile visibility flag.
func (r *Repository) UpdateVisibility(id uint, isPublic bool) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).
		Update("is_public", isPublic).Error
}

// SoftDelete marks the user deleted. The row and all historical guess
// data stay in place.
func (r *Repository) SoftDelete(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
