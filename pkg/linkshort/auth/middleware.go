package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DanyRz/Link-shortener-api/pkg/linkshort/models"
)

// CredentialsMessage is the single message returned for every
// authentication failure. Unknown user, wrong password, malformed or
// expired token are indistinguishable to the caller.
const CredentialsMessage = "Unable to validate credentials"

// ContextKeyUser is the gin context key holding the resolved *models.User.
const ContextKeyUser = "current_user"

// Authenticate looks up the user by name and verifies the password.
// The returned errors stay distinguishable for internal use.
func Authenticate(db *gorm.DB, userName, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, ErrUnknownUser
	}
	if !CheckPassword(password, user.HashedPassword) {
		return nil, ErrBadPassword
	}
	return &user, nil
}

// Middleware validates the bearer token, loads the subject user and
// stores it in the request context. Any failure aborts with 401 and the
// collapsed credentials message.
func Middleware(tokens *Manager, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c)
			return
		}

		claims, err := tokens.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ContextKeyUser, &user)
		c.Next()
	}
}

// CurrentUser returns the user resolved by Middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": CredentialsMessage})
}
