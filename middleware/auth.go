package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"media-access/entities"
	"media-access/repository"
)

const userKey = "currentUser"

// Principal resolves the authenticated user from the X-User-ID header set
// by the upstream auth gateway. Blocked accounts are rejected here so no
// handler has to re-check.
func Principal(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "authentication required"},
			})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"message": "authentication required"},
			})
			return
		}

		user, err := store.FindUserById(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"success": false,
					"error":   gin.H{"message": "authentication required"},
				})
				return
			}
			// a datastore failure is not an auth failure
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("principal lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   gin.H{"message": "internal server error"},
			})
			return
		}

		if user.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"message": "your account is blocked"},
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// AdminOnly gates a route group to administrators. Must run after Principal.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error":   gin.H{"message": "administrators only"},
			})
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *entities.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := value.(*entities.User)
	return user
}
