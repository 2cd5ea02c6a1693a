package links

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/auth"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/shortcode"
)

var validate = validator.New()

// Handler handles link requests scoped to the authenticated owner.
type Handler struct {
	db  *gorm.DB
	gen *shortcode.Generator
}

// NewHandler creates a new links handler
func NewHandler(db *gorm.DB, gen *shortcode.Generator) *Handler {
	return &Handler{db: db, gen: gen}
}

// CreateLinkRequest represents the request to shorten a URL
type CreateLinkRequest struct {
	LongVersion string `json:"long_version" binding:"required"`
}

// Create validates the URL, generates a short code and stores the link
// owned by the caller.
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Wrong input"})
		return
	}

	if err := validate.Var(req.LongVersion, "url"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Wrong input"})
		return
	}

	short, err := h.gen.ShortURL()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate short code"})
		return
	}

	link := models.Link{
		LongVersion:  req.LongVersion,
		ShortVersion: short,
		OwnerID:      user.ID,
	}
	if err := h.db.Create(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	c.JSON(http.StatusOK, link)
}

// List returns all links owned by the caller.
func (h *Handler) List(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	links := make([]models.Link, 0)
	if err := h.db.Where("owner_id = ?", user.ID).Find(&links).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	c.JSON(http.StatusOK, links)
}

// GetByID returns one of the caller's links. The lookup filters on
// owner AND id, so someone else's link is simply not found.
func (h *Handler) GetByID(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	linkID, err := strconv.ParseUint(c.Param("link_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	var link models.Link
	if err := h.db.Where("id = ? AND owner_id = ?", linkID, user.ID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	c.JSON(http.StatusOK, link)
}

// Delete removes one of the caller's links. A missing link is 404; a
// link owned by someone else is 403.
func (h *Handler) Delete(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.CredentialsMessage})
		return
	}

	linkID, err := strconv.ParseUint(c.Param("link_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	var link models.Link
	if err := h.db.First(&link, linkID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	if link.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Link is not your own"})
		return
	}

	if err := h.db.Delete(&link).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "link deleted"})
}

// RegisterRoutes registers link routes on the root router.
func (h *Handler) RegisterRoutes(r *gin.Engine, authRequired gin.HandlerFunc) {
	me := r.Group("/users/me", authRequired)
	me.GET("/links", h.List)
	me.GET("/:link_id", h.GetByID)
	me.POST("/links/create", h.Create)
	me.DELETE("/links/delete/:link_id", h.Delete)
}
