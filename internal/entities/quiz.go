package entities

import (
	"time"

	"gorm.io/gorm"
)

// Session is a single practice run. The kana-subset configuration is
// snapshotted at creation time: hiragana/katakana/mods enable parts of
// the catalog, mult is the required number of exposures per kana.
type Session struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"index" json:"user_id"`
	IsPublic   bool           `gorm:"default:false" json:"is_public"`
	Hiragana   int            `gorm:"default:1" json:"hiragana"`
	Katakana   int            `gorm:"default:1" json:"katakana"`
	Mods       int            `gorm:"default:1" json:"mods"`
	Mult       int            `gorm:"default:1" json:"mult"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	FinishedAt *time.Time     `json:"finished_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// IsFinished reports whether the session has been marked finished.
func (s *Session) IsFinished() bool {
	return s.FinishedAt != nil
}

// Kana is one syllabic character. Mod 0 is the base form; higher values
// mark diacritic-modified forms (1 = dakuten, 2 = handakuten).
// ConsonantLine always names the unvoiced base line, so the t-line "ji"
// keeps ConsonantLine "t". Static reference data, seeded once.
type Kana struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Reading       string `gorm:"index;size:10" json:"reading"`
	IsKatakana    bool   `gorm:"index" json:"is_katakana"`
	Mod           int    `json:"mod"`
	ConsonantLine string `gorm:"size:2" json:"consonant_line"`
	VowelColumn   string `gorm:"size:2" json:"vowel_column"`
	Unicode       string `gorm:"size:8" json:"unicode"`
}

// SessionKana is one recorded guess. Append-only: rows are never
// updated or deleted, and there is deliberately no DeletedAt so
// historical guesses keep counting in all-time statistics even after
// their session or user is soft-deleted.
type SessionKana struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    uint      `gorm:"index" json:"session_id"`
	KanaID       uint      `gorm:"index" json:"kana_id"`
	MultPosition int       `json:"mult_position"` // 1-based ordinal among repeats of this kana
	SubmittedAt  time.Time `json:"submitted_at"`
	IsCorrect    bool      `json:"is_correct"`
}
