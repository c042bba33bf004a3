package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	"github.com/antonin-suzor/kanaschool/internal/database/users"
	"github.com/antonin-suzor/kanaschool/internal/entities"
)

// Usernames must be URL-friendly so profile pages can live at
// /users/:name without escaping.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var (
	ErrUsernameInvalid    = errors.New("username must be URL-friendly (alphanumeric, hyphens, underscores only)")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrPasswordRequired   = errors.New("password cannot be empty")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordIncorrect  = errors.New("password is incorrect")
	ErrSessionNotFound    = errors.New("session not found")
	ErrNotSessionOwner    = errors.New("you do not have permission to delete this session")
)

// IsValidUsername reports whether name is non-blank and URL-friendly.
func IsValidUsername(name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	return usernamePattern.MatchString(name)
}

// IsValidPassword reports whether password is acceptable. Any non-empty
// password is allowed.
func IsValidPassword(password string) bool {
	return password != ""
}

// Service handles accounts and authentication. The password hash never
// leaves this package; every operation returns the public-safe
// AuthUser view or a sentinel error.
type Service struct {
	users    *users.Repository
	sessions *sessions.Repository
}

// NewService creates a new authentication service.
func NewService(users *users.Repository, sessions *sessions.Repository) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
	}
}

// Signup validates and creates a new account. The uniqueness check and
// the insert are two separate statements, so two simultaneous signups
// with the same name can both pass the check; the loser surfaces at
// the application level, not as a constraint violation.
func (s *Service) Signup(name, password string) (*entities.AuthUser, error) {
	if !IsValidUsername(name) {
		return nil, ErrUsernameInvalid
	}
	if !IsValidPassword(password) {
		return nil, ErrPasswordRequired
	}

	taken, err := s.users.NameTaken(name, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(name, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user.AuthView(), nil
}

// Login validates credentials. Unknown usernames and wrong passwords
// both return ErrInvalidCredentials so callers cannot enumerate
// accounts.
func (s *Service) Login(name, password string) (*entities.AuthUser, error) {
	user, err := s.users.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user.AuthView(), nil
}

// GetAuthUserByName returns the public-safe view of a live user looked
// up by name, for profile pages.
func (s *Service) GetAuthUserByName(name string) (*entities.AuthUser, error) {
	user, err := s.users.GetByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.AuthView(), nil
}

// GetAuthUserByID returns the public-safe view of a live user.
func (s *Service) GetAuthUserByID(id uint) (*entities.AuthUser, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user.AuthView(), nil
}

// UpdatePassword verifies the current password and stores a new hash.
func (s *Service) UpdatePassword(userID uint, oldPassword, newPassword string) error {
	if !IsValidPassword(newPassword) {
		return ErrPasswordRequired
	}

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrPasswordIncorrect
	}

	newHash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.UpdatePassword(userID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateUsername validates the new name, checks uniqueness against
// every other live user, and returns the refreshed view for the caller
// to re-issue the identity cookie.
func (s *Service) UpdateUsername(userID uint, newName string) (*entities.AuthUser, error) {
	if !IsValidUsername(newName) {
		return nil, ErrUsernameInvalid
	}

	taken, err := s.users.NameTaken(newName, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	if err := s.users.UpdateName(userID, newName); err != nil {
		return nil, fmt.Errorf("failed to update username: %w", err)
	}

	return s.GetAuthUserByID(userID)
}

// UpdateVisibility sets the profile visibility flag and returns the
// refreshed view for the caller to re-issue the identity cookie.
func (s *Service) UpdateVisibility(userID uint, isPublic bool) (*entities.AuthUser, error) {
	if err := s.users.UpdateVisibility(userID, isPublic); err != nil {
		return nil, fmt.Errorf("failed to update profile visibility: %w", err)
	}
	return s.GetAuthUserByID(userID)
}

// DeleteAccount soft-deletes the account after verifying the password.
// The user's sessions are left in place.
func (s *Service) DeleteAccount(userID uint, password string) error {
	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return ErrPasswordIncorrect
	}

	if err := s.users.SoftDelete(userID); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return nil
}

// DeleteSession soft-deletes a quiz session if it belongs to userID.
func (s *Service) DeleteSession(userID, sessionID uint) error {
	session, err := s.sessions.GetByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if session.UserID != userID {
		return ErrNotSessionOwner
	}

	if err := s.sessions.SoftDelete(sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
