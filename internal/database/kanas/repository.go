// Package kanas provides read access to the static kana catalog.
package kanas

import (
	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// Repository handles kana catalog lookups. The catalog is seeded at
// startup and never mutated afterwards.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new kanas repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All returns the full catalog in seed order.
func (r *Repository) All() ([]entities.Kana, error) {
	var kanas []entities.Kana
	err := r.db.Order("id ASC").Find(&kanas).Error
	return kanas, err
}

// Hiraganas returns the hiragana half of the catalog.
func (r *Repository) Hiraganas() ([]entities.Kana, error) {
	var kanas []entities.Kana
	err := r.db.Where("is_katakana = ?", false).Order("id ASC").Find(&kanas).Error
	return kanas, err
}

// Katakanas returns the katakana half of the catalog.
func (r *Repository) Katakanas() ([]entities.Kana, error) {
	var kanas []entities.Kana
	err := r.db.Where("is_katakana = ?", true).Order("id ASC").Find(&kanas).Error
	return kanas, err
}

// ByReading returns the first kana with the given romanized reading in
// the requested script. Readings shared by two forms ("ji", "zu")
// resolve to the s-line form; use ByReadingAndLine for the other.
func (r *Repository) ByReading(reading string, isKatakana bool) (*entities.Kana, error) {
	var kana entities.Kana
	err := r.db.Where("reading = ? AND is_katakana = ?", reading, isKatakana).
		Order("id ASC").First(&kana).Error
	if err != nil {
		return nil, err
	}
	return &kana, nil
}

// ByReadingAndLine returns the kana with the given reading on a
// specific consonant line, e.g. the t-line "ji".
func (r *Repository) ByReadingAndLine(reading, line string, isKatakana bool) (*entities.Kana, error) {
	var kana entities.Kana
	err := r.db.Where("reading = ? AND consonant_line = ? AND is_katakana = ?", reading, line, isKatakana).
		First(&kana).Error
	if err != nil {
		return nil, err
	}
	return &kana, nil
}
