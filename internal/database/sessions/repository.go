// Package sessions provides database operations for quiz sessions and
// their append-only guess log.
package sessions

import (
	"time"

	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// recentSessionLimit caps the "my sessions" lists.
const recentSessionLimit = 10

// GuessedKana is one recorded guess joined to its kana.
type GuessedKana struct {
	entities.Kana
	IsCorrect bool `json:"is_correct"`
}

// SessionWithStats is a session row annotated with its guess totals.
type SessionWithStats struct {
	ID             uint       `json:"id"`
	Hiragana       int        `json:"hiragana"`
	Katakana       int        `json:"katakana"`
	Mods           int        `json:"mods"`
	Mult           int        `json:"mult"`
	IsPublic       bool       `json:"is_public"`
	CreatedAt      time.Time  `json:"created_at"`
	FinishedAt     *time.Time `json:"finished_at"`
	TotalGuesses   int        `json:"total_guesses"`
	CorrectGuesses int        `json:"correct_guesses"`
}

// Repository handles all quiz session database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new sessions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new session for the user with the given
// configuration snapshot and returns its ID. New sessions are private.
func (r *Repository) Create(userID uint, hiragana, katakana, mods, mult int) (uint, error) {
	session := &entities.Session{
		UserID:   userID,
		IsPublic: false,
		Hiragana: hiragana,
		Katakana: katakana,
		Mods:     mods,
		Mult:     mult,
	}

	if err := r.db.Create(session).Error; err != nil {
		return 0, err
	}
	return session.ID, nil
}

// GetByID retrieves a live session by ID.
func (r *Repository) GetByID(id uint) (*entities.Session, error) {
	var session entities.Session
	err := r.db.First(&session, id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// GetUserSession retrieves a live session only if it belongs to userID.
func (r *Repository) GetUserSession(id, userID uint) (*entities.Session, error) {
	var session entities.Session
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Finish stamps finished_at with the current time. Calling it again
// simply overwrites the timestamp.
func (r *Repository) Finish(id uint) error {
	return r.db.Model(&entities.Session{}).Where("id = ?", id).
		Update("finished_at", time.Now()).Error
}

// SetVisibility sets the session visibility flag.
func (r *Repository) SetVisibility(id uint, isPublic bool) error {
	return r.db.Model(&entities.Session{}).Where("id = ?", id).
		Update("is_public", isPublic).Error
}

// SoftDelete marks the session deleted. Its guess rows stay and keep
// counting in all-time statistics.
func (r *Repository) SoftDelete(id uint) error {
	return r.db.Delete(&entities.Session{}, id).Error
}

// RecordGuess appends one guess row. multPosition is computed by the
// caller as prior guess count + 1.
func (r *Repository) RecordGuess(sessionID, kanaID uint, isCorrect bool, multPosition int) error {
	guess := &entities.SessionKana{
		SessionID:    sessionID,
		KanaID:       kanaID,
		MultPosition: multPosition,
		SubmittedAt:  time.Now(),
		IsCorrect:    isCorrect,
	}
	return r.db.Create(guess).Error
}

// GuessCount returns how many times the kana has been guessed within
// the session so far.
func (r *Repository) GuessCount(sessionID, kanaID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.SessionKana{}).
		Where("session_id = ? AND kana_id = ?", sessionID, kanaID).
		Count(&count).Error
	return count, err
}

// RemainingKanas returns, in random order, every kana still to be
// quizzed for the session: its script is enabled, it is a base form or
// modified forms are enabled, and it has been guessed fewer than mult
// times. Recomputed from the guess log on every call.
func (r *Repository) RemainingKanas(session *entities.Session) ([]entities.Kana, error) {
	var kanas []entities.Kana
	err := r.db.Raw(`
		SELECT k.* FROM kanas k
		WHERE ((k.is_katakana = 0 AND ? <> 0) OR (k.is_katakana = 1 AND ? <> 0))
		AND (k.mod = 0 OR (k.mod > 0 AND ? <> 0))
		AND (
			k.id NOT IN (
				SELECT kana_id FROM session_kanas
				WHERE session_id = ?
			)
			OR k.id IN (
				SELECT kana_id FROM session_kanas
				WHERE session_id = ?
				GROUP BY kana_id
				HAVING COUNT(*) < ?
			)
		)
		ORDER BY RANDOM()`,
		session.Hiragana, session.Katakana, session.Mods,
		session.ID, session.ID, session.Mult,
	).Scan(&kanas).Error
	return kanas, err
}

// GuessedKanas returns every guess of the session joined to its kana,
// in submission order.
func (r *Repository) GuessedKanas(sessionID uint) ([]GuessedKana, error) {
	var guessed []GuessedKana
	err := r.db.Raw(`
		SELECT k.*, sk.is_correct
		FROM session_kanas sk
		JOIN kanas k ON sk.kana_id = k.id
		WHERE sk.session_id = ?
		ORDER BY sk.submitted_at ASC`,
		sessionID,
	).Scan(&guessed).Error
	return guessed, err
}

// UnfinishedForUser returns the user's most recently touched open
// sessions.
func (r *Repository) UnfinishedForUser(userID uint) ([]entities.Session, error) {
	var sessions []entities.Session
	err := r.db.Where("user_id = ? AND finished_at IS NULL", userID).
		Order("updated_at DESC").
		Limit(recentSessionLimit).
		Find(&sessions).Error
	return sessions, err
}

// FinishedForUser returns the user's most recently touched finished
// sessions.
func (r *Repository) FinishedForUser(userID uint) ([]entities.Session, error) {
	var sessions []entities.Session
	err := r.db.Where("user_id = ? AND finished_at IS NOT NULL", userID).
		Order("updated_at DESC").
		Limit(recentSessionLimit).
		Find(&sessions).Error
	return sessions, err
}

// WithStats returns the user's sessions newest first, each annotated
// with guess totals. When includePrivate is false only public sessions
// are returned (foreign profile views).
func (r *Repository) WithStats(userID uint, limit, offset int, includePrivate bool) ([]SessionWithStats, error) {
	query := `
		SELECT
			s.id,
			s.hiragana,
			s.katakana,
			s.mods,
			s.mult,
			s.is_public,
			s.created_at,
			s.finished_at,
			COUNT(sk.id) AS total_guesses,
			COALESCE(SUM(CASE WHEN sk.is_correct THEN 1 ELSE 0 END), 0) AS correct_guesses
		FROM sessions s
		LEFT JOIN session_kanas sk ON s.id = sk.session_id
		WHERE s.user_id = ? AND s.deleted_at IS NULL`
	args := []any{userID}

	if !includePrivate {
		query += ` AND s.is_public = 1`
	}

	query += `
		GROUP BY s.id
		ORDER BY s.created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var sessions []SessionWithStats
	err := r.db.Raw(query, args...).Scan(&sessions).Error
	return sessions, err
}
