package redirect

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
)

// Handler resolves short codes to their stored long URLs.
type Handler struct {
	db      *gorm.DB
	baseURL string
}

// NewHandler creates a new redirect handler
func NewHandler(db *gorm.DB, baseURL string) *Handler {
	return &Handler{db: db, baseURL: baseURL}
}

// Redirect reconstructs the full short URL from the path segment and
// issues a 302 to the stored long URL.
func (h *Handler) Redirect(c *gin.Context) {
	short := h.baseURL + c.Param("shortener")

	var link models.Link
	if err := h.db.Where("short_version = ?", short).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	c.Redirect(http.StatusFound, link.LongVersion)
}

// RegisterRoutes registers the redirect route on the root router.
// This must be called AFTER all other routes to avoid conflicts.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/:shortener", h.Redirect)
}
