package shortcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
)

const urlSafeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func TestNewCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := NewCode()
		require.NoError(t, err)

		assert.Len(t, code, 7)
		for _, r := range code {
			assert.Contains(t, urlSafeAlphabet, string(r))
		}
		seen[code] = true
	}
	// 100 draws from a 40-bit space should never collide.
	assert.Len(t, seen, 100)
}

func TestShortURLPrefix(t *testing.T) {
	db := setupTestDB(t)
	g := NewGenerator(db, "http://127.0.0.1:8000/")

	short, err := g.ShortURL()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(short, "http://127.0.0.1:8000/"))
	assert.Len(t, strings.TrimPrefix(short, "http://127.0.0.1:8000/"), 7)
}

func TestShortURLAvoidsStoredCodes(t *testing.T) {
	db := setupTestDB(t)
	g := NewGenerator(db, "http://127.0.0.1:8000/")

	short, err := g.ShortURL()
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Link{
		LongVersion:  "https://example.com",
		ShortVersion: short,
		OwnerID:      1,
	}).Error)

	// The generator checks the store, so a fresh draw never returns the
	// code that was just persisted.
	for i := 0; i < 20; i++ {
		next, err := g.ShortURL()
		require.NoError(t, err)
		assert.NotEqual(t, short, next)
	}
}
