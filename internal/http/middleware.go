package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"nzwalks-api/internal/auth"
	"nzwalks-api/internal/domain"
)

// claimsContextKey is where validated token claims live on the gin context.
const claimsContextKey = "authClaims"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// recoveryMiddleware is the top-level boundary for unhandled panics. The
// client only ever sees a correlation id; the cause is logged against it.
func recoveryMiddleware(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				correlationID := uuid.NewString()
				logger.WithField("correlation_id", correlationID).
					Errorf("panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":         "internal server error",
					"correlationId": correlationID,
				})
			}
		}()
		c.Next()
	}
}

// authenticate validates a bearer token when one is presented. A request
// without a token proceeds anonymously; role checks downstream decide
// whether that is enough. A presented token that fails validation rejects
// the request outright, and the reason is logged, not returned.
func (h *Handler) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			h.logger.Warn("authorization header without bearer scheme")
			unauthenticated(c)
			return
		}

		claims, err := h.issuer.Validate(strings.TrimPrefix(header, prefix))
		if err != nil {
			h.logger.WithError(err).Warn("token validation failed")
			unauthenticated(c)
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// requireRoles guards a route: no validated claims means 401, claims without
// any of the required roles means 403. A match on any single role grants
// access.
func (h *Handler) requireRoles(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, ok := c.Get(claimsContextKey)
		if !ok {
			unauthenticated(c)
			return
		}
		claims, ok := value.(*auth.Claims)
		if !ok {
			unauthenticated(c)
			return
		}

		if !claims.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}

func unauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
}
