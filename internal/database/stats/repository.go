// Package stats provides the read-only aggregation queries behind the
// sitewide, per-user and per-session statistics views.
//
// Raw queries here must filter soft-deleted rows explicitly; gorm's
// DeletedAt scope only applies to model queries. Guess rows
// (session_kanas) carry no delete flag and always count.
package stats

import (
	"time"

	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// AnswerStats is a total/correct guess count pair.
type AnswerStats struct {
	Total   int64 `json:"total"`
	Correct int64 `json:"correct"`
}

// KanaRatio counts guesses per script.
type KanaRatio struct {
	HiraganaCount int64 `json:"hiragana_count"`
	KatakanaCount int64 `json:"katakana_count"`
}

// DiacriticsRatio counts guesses of base vs diacritic-modified kana.
type DiacriticsRatio struct {
	BaseCount       int64 `json:"base_count"`
	DiacriticsCount int64 `json:"diacritics_count"`
}

// Repository handles all statistics queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new stats repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TotalUserCount counts live users.
func (r *Repository) TotalUserCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).Count(&count).Error
	return count, err
}

// UsersCreatedSince counts live users created at or after since.
func (r *Repository) UsersCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.User{}).
		Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// TotalSessionCount counts live sessions.
func (r *Repository) TotalSessionCount() (int64, error) {
	var count int64
	err := r.db.Model(&entities.Session{}).Count(&count).Error
	return count, err
}

// SessionsCreatedSince counts live sessions created at or after since.
func (r *Repository) SessionsCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Session{}).
		Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// UserSessionCount counts a user's live sessions.
func (r *Repository) UserSessionCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Session{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// FinishedSessionCount counts a user's live finished sessions.
func (r *Repository) FinishedSessionCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Session{}).
		Where("user_id = ? AND finished_at IS NOT NULL", userID).Count(&count).Error
	return count, err
}

// AllTimeAnswerStats aggregates every guess ever recorded, including
// those of deleted sessions and users.
func (r *Repository) AllTimeAnswerStats() (AnswerStats, error) {
	var stats AnswerStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM session_kanas`).Scan(&stats).Error
	return stats, err
}

// AnswerStatsSince aggregates guesses submitted at or after since.
func (r *Repository) AnswerStatsSince(since time.Time) (AnswerStats, error) {
	var stats AnswerStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM session_kanas
		WHERE submitted_at >= ?`, since).Scan(&stats).Error
	return stats, err
}

// SessionAnswerStats aggregates the guesses of one session.
func (r *Repository) SessionAnswerStats(sessionID uint) (AnswerStats, error) {
	var stats AnswerStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM session_kanas
		WHERE session_id = ?`, sessionID).Scan(&stats).Error
	return stats, err
}

// UserAnswerStats aggregates guesses across the user's live sessions.
func (r *Repository) UserAnswerStats(userID uint) (AnswerStats, error) {
	var stats AnswerStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM session_kanas
		WHERE session_id IN (
			SELECT id FROM sessions WHERE user_id = ? AND deleted_at IS NULL
		)`, userID).Scan(&stats).Error
	return stats, err
}

// UserAnswerStatsSince aggregates guesses across the user's live
// sessions created at or after since.
func (r *Repository) UserAnswerStatsSince(userID uint, since time.Time) (AnswerStats, error) {
	var stats AnswerStats
	err := r.db.Raw(`
		SELECT
			COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN is_correct THEN 1 ELSE 0 END), 0) AS correct
		FROM session_kanas
		WHERE session_id IN (
			SELECT id FROM sessions
			WHERE user_id = ? AND deleted_at IS NULL AND created_at >= ?
		)`, userID, since).Scan(&stats).Error
	return stats, err
}

// KanaRatioStats counts all-time guesses per script.
func (r *Repository) KanaRatioStats() (KanaRatio, error) {
	var ratio KanaRatio
	err := r.db.Raw(`
		SELECT
			COUNT(CASE WHEN k.is_katakana = 0 THEN 1 END) AS hiragana_count,
			COUNT(CASE WHEN k.is_katakana = 1 THEN 1 END) AS katakana_count
		FROM session_kanas sk
		JOIN kanas k ON sk.kana_id = k.id`).Scan(&ratio).Error
	return ratio, err
}

// DiacriticsRatioStats counts all-time guesses of base vs modified
// kana.
func (r *Repository) DiacriticsRatioStats() (DiacriticsRatio, error) {
	var ratio DiacriticsRatio
	err := r.db.Raw(`
		SELECT
			COUNT(CASE WHEN k.mod = 0 THEN 1 END) AS base_count,
			COUNT(CASE WHEN k.mod > 0 THEN 1 END) AS diacritics_count
		FROM session_kanas sk
		JOIN kanas k ON sk.kana_id = k.id`).Scan(&ratio).Error
	return ratio, err
}

// AverageSessionsPerUser averages live session counts over users who
// have at least one live session. Zero when no sessions exist.
func (r *Repository) AverageSessionsPerUser() (float64, error) {
	var average float64
	err := r.db.Raw(`
		SELECT COALESCE(AVG(session_count), 0)
		FROM (
			SELECT COUNT(*) AS session_count
			FROM sessions
			WHERE deleted_at IS NULL
			GROUP BY user_id
		)`).Scan(&average).Error
	return average, err
}

// MaxSessionsPerUser returns the highest live session count held by
// any single user.
func (r *Repository) MaxSessionsPerUser() (int64, error) {
	var max int64
	err := r.db.Raw(`
		SELECT COALESCE(MAX(session_count), 0)
		FROM (
			SELECT COUNT(*) AS session_count
			FROM sessions
			WHERE deleted_at IS NULL
			GROUP BY user_id
		)`).Scan(&max).Error
	return max, err
}
