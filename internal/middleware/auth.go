package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "kopilka/internal/errors"
)

// AdminAuth returns a middleware that requires the static admin bearer token.
// When no token is configured, the admin API is disabled outright rather
// than left open.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			abortUnauthorized(c)
			return
		}

		header := c.GetHeader("Authorization")
		provided, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c)
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			abortUnauthorized(c)
			return
		}

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": apperrors.ErrUnauthorized.Message,
		},
	})
}
