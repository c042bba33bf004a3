package auth

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonin-suzor/kanaschool/internal/database"
	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	"github.com/antonin-suzor/kanaschool/internal/database/users"
	"github.com/antonin-suzor/kanaschool/internal/entities"
)

func setupAuthTestService(t *testing.T) (*Service, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := NewService(users.NewRepository(db.DB), sessions.NewRepository(db.DB))

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return service, db, cleanup
}

func TestIsValidUsername(t *testing.T) {
	assert.True(t, IsValidUsername("abc-123_X"))
	assert.True(t, IsValidUsername("a"))
	assert.False(t, IsValidUsername(""))
	assert.False(t, IsValidUsername("   "))
	assert.False(t, IsValidUsername("abc def"))
	assert.False(t, IsValidUsername("kana/school"))
}

func TestService_Signup(t *testing.T) {
	t.Run("creates a private account and returns the public view", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		assert.Greater(t, user.ID, uint(0))
		assert.Equal(t, "misaki", user.Name)
		assert.False(t, user.IsPublic)
	})

	t.Run("rejects invalid usernames", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("has space", "secret")
		assert.ErrorIs(t, err, ErrUsernameInvalid)
	})

	t.Run("rejects empty passwords", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("misaki", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})

	t.Run("rejects taken usernames", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		_, err = service.Signup("misaki", "other")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("frees the name after the account is deleted", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)
		require.NoError(t, service.DeleteAccount(user.ID, "secret"))

		_, err = service.Signup("misaki", "secret")
		assert.NoError(t, err)
	})
}

func TestService_Login(t *testing.T) {
	t.Run("signup then login returns the same user", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		created, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		logged, err := service.Login("misaki", "secret")
		require.NoError(t, err)
		assert.Equal(t, created.ID, logged.ID)
		assert.Equal(t, created.Name, logged.Name)
	})

	t.Run("unknown user and wrong password fail identically", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		_, unknownErr := service.Login("nobody", "secret")
		_, wrongErr := service.Login("misaki", "wrong")

		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("deleted users cannot log in", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)
		require.NoError(t, service.DeleteAccount(user.ID, "secret"))

		_, err = service.Login("misaki", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_UpdatePassword(t *testing.T) {
	t.Run("requires the current password", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "old")
		require.NoError(t, err)

		err = service.UpdatePassword(user.ID, "wrong", "new")
		assert.ErrorIs(t, err, ErrPasswordIncorrect)

		require.NoError(t, service.UpdatePassword(user.ID, "old", "new"))

		_, err = service.Login("misaki", "new")
		assert.NoError(t, err)
	})

	t.Run("rejects an empty new password", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "old")
		require.NoError(t, err)

		err = service.UpdatePassword(user.ID, "old", "")
		assert.ErrorIs(t, err, ErrPasswordRequired)
	})
}

func TestService_UpdateUsername(t *testing.T) {
	t.Run("returns the refreshed view", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		updated, err := service.UpdateUsername(user.ID, "haruka")
		require.NoError(t, err)
		assert.Equal(t, user.ID, updated.ID)
		assert.Equal(t, "haruka", updated.Name)
	})

	t.Run("allows keeping your own name", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		_, err = service.UpdateUsername(user.ID, "misaki")
		assert.NoError(t, err)
	})

	t.Run("rejects names held by other live users", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		_, err := service.Signup("misaki", "secret")
		require.NoError(t, err)
		other, err := service.Signup("haruka", "secret")
		require.NoError(t, err)

		_, err = service.UpdateUsername(other.ID, "misaki")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestService_DeleteAccount(t *testing.T) {
	t.Run("soft deletes without touching sessions", func(t *testing.T) {
		service, db, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		sessionRepo := sessions.NewRepository(db.DB)
		sessionID, err := sessionRepo.Create(user.ID, 1, 1, 1, 1)
		require.NoError(t, err)

		require.NoError(t, service.DeleteAccount(user.ID, "secret"))

		_, err = service.GetAuthUserByID(user.ID)
		assert.ErrorIs(t, err, ErrUserNotFound)

		// Sessions are not cascade-deleted
		session, err := sessionRepo.GetByID(sessionID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, session.UserID)

		// The row itself survives as a soft-deleted record
		var raw entities.User
		require.NoError(t, db.DB.Unscoped().First(&raw, user.ID).Error)
		assert.True(t, raw.DeletedAt.Valid)
	})

	t.Run("requires the password", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		err = service.DeleteAccount(user.ID, "wrong")
		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})
}

func TestService_DeleteSession(t *testing.T) {
	t.Run("owners can delete their sessions", func(t *testing.T) {
		service, db, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		sessionRepo := sessions.NewRepository(db.DB)
		sessionID, err := sessionRepo.Create(user.ID, 1, 1, 1, 1)
		require.NoError(t, err)

		require.NoError(t, service.DeleteSession(user.ID, sessionID))

		_, err = sessionRepo.GetByID(sessionID)
		assert.Error(t, err)
	})

	t.Run("non-owners get a permission error and the session survives", func(t *testing.T) {
		service, db, cleanup := setupAuthTestService(t)
		defer cleanup()

		owner, err := service.Signup("misaki", "secret")
		require.NoError(t, err)
		intruder, err := service.Signup("haruka", "secret")
		require.NoError(t, err)

		sessionRepo := sessions.NewRepository(db.DB)
		sessionID, err := sessionRepo.Create(owner.ID, 1, 1, 1, 1)
		require.NoError(t, err)

		err = service.DeleteSession(intruder.ID, sessionID)
		assert.ErrorIs(t, err, ErrNotSessionOwner)

		session, err := sessionRepo.GetByID(sessionID)
		require.NoError(t, err)
		assert.False(t, session.DeletedAt.Valid)
	})

	t.Run("missing sessions report not found", func(t *testing.T) {
		service, _, cleanup := setupAuthTestService(t)
		defer cleanup()

		user, err := service.Signup("misaki", "secret")
		require.NoError(t, err)

		err = service.DeleteSession(user.ID, 9999)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
