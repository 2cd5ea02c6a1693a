package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler handles token issuance requests
type Handler struct {
	db     *gorm.DB
	tokens *Manager
}

// NewHandler creates a new auth handler
func NewHandler(db *gorm.DB, tokens *Manager) *Handler {
	return &Handler{db: db, tokens: tokens}
}

// TokenForm is the form-encoded login request, OAuth2 password style.
type TokenForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// TokenResponse is the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Token authenticates with form credentials and issues a bearer token.
func (h *Handler) Token(c *gin.Context) {
	var form TokenForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": CredentialsMessage})
		return
	}

	user, err := Authenticate(h.db, form.Username, form.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": CredentialsMessage})
		return
	}

	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// RefreshToken issues a fresh token for the already-authenticated user.
// The previous token is not revoked; it simply ages out.
func (h *Handler) RefreshToken(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": CredentialsMessage})
		return
	}

	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// RegisterRoutes registers the token endpoints on the root router.
func (h *Handler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	r.POST("/token", h.Token)
	r.POST("/refresh_token", authRequired, h.RefreshToken)
}
