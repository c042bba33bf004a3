package stats

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonin-suzor/kanaschool/internal/database"
	"github.com/antonin-suzor/kanaschool/internal/database/kanas"
	"github.com/antonin-suzor/kanaschool/internal/database/sessions"
	"github.com/antonin-suzor/kanaschool/internal/database/users"
)

func setupStatsTest(t *testing.T) (*Repository, *database.Database, func()) {
	t.Helper()

	dbPath := "./test_stats_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), db, cleanup
}

// seedActivity creates a user with one session holding one correct
// hiragana guess and one incorrect katakana guess.
func seedActivity(t *testing.T, db *database.Database) (userID, sessionID uint) {
	t.Helper()

	user, err := users.NewRepository(db.DB).Create("misaki", "hash")
	require.NoError(t, err)

	sessionRepo := sessions.NewRepository(db.DB)
	sessionID, err = sessionRepo.Create(user.ID, 1, 1, 1, 1)
	require.NoError(t, err)

	kanaRepo := kanas.NewRepository(db.DB)
	hiraganas, err := kanaRepo.Hiraganas()
	require.NoError(t, err)
	katakanas, err := kanaRepo.Katakanas()
	require.NoError(t, err)

	require.NoError(t, sessionRepo.RecordGuess(sessionID, hiraganas[0].ID, true, 1))
	require.NoError(t, sessionRepo.RecordGuess(sessionID, katakanas[0].ID, false, 1))

	return user.ID, sessionID
}

func TestRepository_Counts(t *testing.T) {
	repo, db, cleanup := setupStatsTest(t)
	defer cleanup()

	userID, _ := seedActivity(t, db)

	total, err := repo.TotalUserCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	totalSessions, err := repo.TotalSessionCount()
	require.NoError(t, err)
	assert.Equal(t, int64(1), totalSessions)

	recent, err := repo.UsersCreatedSince(time.Now().AddDate(0, -1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), recent)

	old, err := repo.UsersCreatedSince(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(0), old)

	userSessions, err := repo.UserSessionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), userSessions)

	finished, err := repo.FinishedSessionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), finished)
}

func TestRepository_AnswerStats(t *testing.T) {
	repo, db, cleanup := setupStatsTest(t)
	defer cleanup()

	userID, sessionID := seedActivity(t, db)

	allTime, err := repo.AllTimeAnswerStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), allTime.Total)
	assert.Equal(t, int64(1), allTime.Correct)

	bySession, err := repo.SessionAnswerStats(sessionID)
	require.NoError(t, err)
	assert.Equal(t, allTime, bySession)

	byUser, err := repo.UserAnswerStats(userID)
	require.NoError(t, err)
	assert.Equal(t, allTime, byUser)
}

func TestRepository_AnswerStatsSurviveSoftDeletes(t *testing.T) {
	repo, db, cleanup := setupStatsTest(t)
	defer cleanup()

	userID, sessionID := seedActivity(t, db)
	require.NoError(t, sessions.NewRepository(db.DB).SoftDelete(sessionID))

	// Global all-time stats keep counting deleted sessions
	allTime, err := repo.AllTimeAnswerStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), allTime.Total)

	// Per-user stats only cover live sessions
	byUser, err := repo.UserAnswerStats(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), byUser.Total)

	// So do session counts
	count, err := repo.UserSessionCount(userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestRepository_Ratios(t *testing.T) {
	repo, db, cleanup := setupStatsTest(t)
	defer cleanup()

	seedActivity(t, db)

	scripts, err := repo.KanaRatioStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), scripts.HiraganaCount)
	assert.Equal(t, int64(1), scripts.KatakanaCount)

	mods, err := repo.DiacriticsRatioStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), mods.BaseCount)
	assert.Equal(t, int64(0), mods.DiacriticsCount)
}

func TestRepository_SessionsPerUser(t *testing.T) {
	repo, db, cleanup := setupStatsTest(t)
	defer cleanup()

	t.Run("zero when no sessions exist", func(t *testing.T) {
		average, err := repo.AverageSessionsPerUser()
		require.NoError(t, err)
		assert.Equal(t, float64(0), average)

		max, err := repo.MaxSessionsPerUser()
		require.NoError(t, err)
		assert.Equal(t, int64(0), max)
	})

	t.Run("averages over users with sessions", func(t *testing.T) {
		userRepo := users.NewRepository(db.DB)
		sessionRepo := sessions.NewRepository(db.DB)

		first, err := userRepo.Create("misaki", "hash")
		require.NoError(t, err)
		second, err := userRepo.Create("haruka", "hash")
		require.NoError(t, err)
		// Third user has no sessions and is excluded from the average
		_, err = userRepo.Create("yuki", "hash")
		require.NoError(t, err)

		for i := 0; i < 3; i++ {
			_, err = sessionRepo.Create(first.ID, 1, 1, 1, 1)
			require.NoError(t, err)
		}
		_, err = sessionRepo.Create(second.ID, 1, 1, 1, 1)
		require.NoError(t, err)

		average, err := repo.AverageSessionsPerUser()
		require.NoError(t, err)
		assert.InDelta(t, 2.0, average, 0.001)

		max, err := repo.MaxSessionsPerUser()
		require.NoError(t, err)
		assert.Equal(t, int64(3), max)
	})
}
