package kanas

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antonin-suzor/kanaschool/internal/database"
)

func setupKanasTest(t *testing.T) (*Repository, func()) {
	t.Helper()

	dbPath := "./test_kanas_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return NewRepository(db.DB), cleanup
}

func TestRepository_Catalog(t *testing.T) {
	repo, cleanup := setupKanasTest(t)
	defer cleanup()

	all, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, all, 142)

	hiraganas, err := repo.Hiraganas()
	require.NoError(t, err)
	assert.Len(t, hiraganas, 71)
	for _, kana := range hiraganas {
		assert.False(t, kana.IsKatakana)
	}

	katakanas, err := repo.Katakanas()
	require.NoError(t, err)
	assert.Len(t, katakanas, 71)
	for _, kana := range katakanas {
		assert.True(t, kana.IsKatakana)
	}
}

func TestRepository_ByReading(t *testing.T) {
	repo, cleanup := setupKanasTest(t)
	defer cleanup()

	t.Run("finds a kana in each script", func(t *testing.T) {
		hiragana, err := repo.ByReading("a", false)
		require.NoError(t, err)
		assert.Equal(t, "あ", hiragana.Unicode)

		katakana, err := repo.ByReading("a", true)
		require.NoError(t, err)
		assert.Equal(t, "ア", katakana.Unicode)
	})

	t.Run("shared readings resolve to the s-line form", func(t *testing.T) {
		ji, err := repo.ByReading("ji", false)
		require.NoError(t, err)
		assert.Equal(t, "s", ji.ConsonantLine)
		assert.Equal(t, "じ", ji.Unicode)
	})

	t.Run("unknown readings are not found", func(t *testing.T) {
		_, err := repo.ByReading("xyz", false)
		assert.Error(t, err)
	})
}

func TestRepository_ByReadingAndLine(t *testing.T) {
	repo, cleanup := setupKanasTest(t)
	defer cleanup()

	ji, err := repo.ByReadingAndLine("ji", "t", false)
	require.NoError(t, err)
	assert.Equal(t, "ぢ", ji.Unicode)
	assert.Greater(t, ji.Mod, 0)
}
