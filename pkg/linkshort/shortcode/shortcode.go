package shortcode

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
)

// CodeBytes is the entropy of a short code. Five random bytes encode to
// seven URL-safe characters.
const CodeBytes = 5

const maxAttempts = 10

// ErrExhausted is returned when repeated generation keeps colliding
// with stored codes.
var ErrExhausted = errors.New("could not generate a unique short code")

// NewCode returns a cryptographically random URL-safe code.
func NewCode() (string, error) {
	b := make([]byte, CodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Generator produces short URLs that are not already taken.
type Generator struct {
	db      *gorm.DB
	baseURL string
}

// NewGenerator creates a generator prefixing codes with baseURL.
func NewGenerator(db *gorm.DB, baseURL string) *Generator {
	return &Generator{db: db, baseURL: baseURL}
}

// ShortURL generates a full short URL, retrying a bounded number of
// times if the generated code is already stored.
func (g *Generator) ShortURL() (string, error) {
	for attempts := 0; attempts < maxAttempts; attempts++ {
		code, err := NewCode()
		if err != nil {
			return "", err
		}
		short := g.baseURL + code

		var existing models.Link
		if err := g.db.Where("short_version = ?", short).First(&existing).Error; err != nil {
			return short, nil
		}
	}
	return "", ErrExhausted
}
