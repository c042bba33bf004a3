// Package quiz implements the practice session lifecycle: creating
// sessions, recording guesses, and computing which kana remain.
package quiz

import (
	"fmt"

	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// Config is the kana-subset configuration snapshotted into a new
// session. Flags are numeric: zero disables, anything else enables.
type Config struct {
	Hiragana int
	Katakana int
	Mods     int
	Mult     int
}

// Service handles quiz sessions on top of the sessions repository.
type Service struct {
	sessions *sessions.Repository
}

// NewService creates a new quiz service.
func NewService(sessions *sessions.Repository) *Service {
	return &Service{sessions: sessions}
}

// CreateSession starts a new practice run for the user and returns its
// ID.
func (s *Service) CreateSession(userID uint, cfg Config) (uint, error) {
	id, err := s.sessions.Create(userID, cfg.Hiragana, cfg.Katakana, cfg.Mods, cfg.Mult)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// GetSession retrieves a live session regardless of owner.
func (s *Service) GetSession(id uint) (*entities.Session, error) {
	return s.sessions.GetByID(id)
}

// GetUserSession retrieves a live session only if it belongs to
// userID. Callers use this as the ownership check before any mutation.
func (s *Service) GetUserSession(id, userID uint) (*entities.Session, error) {
	return s.sessions.GetUserSession(id, userID)
}

// RecordGuess appends a guess to the session's log and returns its
// mult position (1-based among repeats of the same kana). The position
// is derived by counting prior guesses, then inserting; two concurrent
// guesses for the same kana can observe the same count and record
// duplicate positions.
func (s *Service) RecordGuess(sessionID, kanaID uint, isCorrect bool) (int, error) {
	previous, err := s.sessions.GuessCount(sessionID, kanaID)
	if err != nil {
		return 0, fmt.Errorf("failed to count guesses: %w", err)
	}

	multPosition := int(previous) + 1

	if err := s.sessions.RecordGuess(sessionID, kanaID, isCorrect, multPosition); err != nil {
		return 0, fmt.Errorf("failed to record guess: %w", err)
	}
	return multPosition, nil
}

// FinishSession stamps the session finished. Repeated calls overwrite
// the timestamp.
func (s *Service) FinishSession(id uint) error {
	if err := s.sessions.Finish(id); err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	return nil
}

// SetVisibility flips the session between public and private.
func (s *Service) SetVisibility(id uint, isPublic bool) error {
	if err := s.sessions.SetVisibility(id, isPublic); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

// RemainingKanas returns the kana still to be quizzed, in random order.
func (s *Service) RemainingKanas(session *entities.Session) ([]entities.Kana, error) {
	return s.sessions.RemainingKanas(session)
}

// GuessedKanas returns the session's guesses in submission order.
func (s *Service) GuessedKanas(sessionID uint) ([]sessions.GuessedKana, error) {
	return s.sessions.GuessedKanas(sessionID)
}

// UnfinishedSessions returns the user's most recent open sessions.
func (s *Service) UnfinishedSessions(userID uint) ([]entities.Session, error) {
	return s.sessions.UnfinishedForUser(userID)
}

// FinishedSessions returns the user's most recent finished sessions.
func (s *Service) FinishedSessions(userID uint) ([]entities.Session, error) {
	return s.sessions.FinishedForUser(userID)
}

// SessionsWithStats returns the user's sessions annotated with guess
// totals, for profile pages.
func (s *Service) SessionsWithStats(userID uint, limit, offset int, includePrivate bool) ([]sessions.SessionWithStats, error) {
	return s.sessions.WithStats(userID, limit, offset, includePrivate)
}
