package users

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/auth"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
)

// Handler handles account requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new users handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// RegisterRequest represents the registration request body
type RegisterRequest struct {
	UserName string `json:"user_name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateRequest carries the old credentials for re-authentication plus
// the replacement user name and password.
type UpdateRequest struct {
	OldUserName string `json:"old_user_name" binding:"required"`
	OldPassword string `json:"old_password" binding:"required"`
	UserName    string `json:"user_name" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

// Register creates a new account with a hashed password and no links.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.Where("user_name = ?", req.UserName).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user := models.User{UserName: req.UserName, HashedPassword: hashed}
	if err := h.db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	user.Links = []models.Link{}
	c.JSON(http.StatusOK, user)
}

// Me returns the authenticated user with their links.
func (h *Handler) Me(c *gin.Context) {
	current, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	var user models.User
	if err := h.db.Preload("Links").First(&user, current.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.Links == nil {
		user.Links = []models.Link{}
	}

	c.JSON(http.StatusOK, user)
}

// UpdateCredentials overwrites the user name and password hash after
// re-authenticating with the OLD credentials from the body. This
// endpoint deliberately does not use bearer auth and performs no
// uniqueness check on the new name; the schema constraint catches
// collisions at the store.
func (h *Handler) UpdateCredentials(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := auth.Authenticate(h.db, req.OldUserName, req.OldPassword)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process password"})
		return
	}

	user.UserName = req.UserName
	user.HashedPassword = hashed
	if err := h.db.Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	var updated models.User
	if err := h.db.Preload("Links").First(&updated, user.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if updated.Links == nil {
		updated.Links = []models.Link{}
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteSelf removes the authenticated user and all their links in a
// single transaction, so a crash cannot orphan links.
func (h *Handler) DeleteSelf(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ?", user.ID).Delete(&models.Link{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// RegisterRoutes registers account routes on the root router.
func (h *Handler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	r.POST("/register", h.Register)

	me := r.Group("/users/me")
	me.GET("", authRequired, h.Me)
	me.PATCH("/update", h.UpdateCredentials)
	me.DELETE("/delete", authRequired, h.DeleteSelf)
}
