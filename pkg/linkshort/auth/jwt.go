package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Internal failure modes stay distinguishable for logging and tests;
// the HTTP surface collapses them all into credentialsMessage.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrUnknownUser  = errors.New("unknown user")
	ErrBadPassword  = errors.New("wrong password")
)

// fallbackTTL applies when the low-level encoder is given no explicit
// lifetime.
const fallbackTTL = 15 * time.Minute

// Claims is the signed token payload: the subject user id plus expiry.
type Claims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// Manager signs and verifies access tokens with a symmetric key. The
// secret and default lifetime come from configuration; there is no
// ambient global state.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager with the given signing secret and
// default token lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// GenerateToken issues a token for the user with the configured lifetime.
func (m *Manager) GenerateToken(userID uint) (string, error) {
	return m.CreateAccessToken(userID, m.ttl)
}

// CreateAccessToken issues a token for the user with an explicit
// lifetime. A non-positive ttl falls back to 15 minutes.
func (m *Manager) CreateAccessToken(userID uint, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = fallbackTTL
	}

	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken verifies the signature and expiry and returns the claims.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
