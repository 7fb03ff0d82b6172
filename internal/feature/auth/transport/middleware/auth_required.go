// Package middleware provides the identity-resolution gate for protected routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"contacts_backend/internal/feature/auth/domain/entity"
)

// IdentityResolver resolves a presented bearer token to a user record.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type IdentityResolver interface {
	// Resolve decodes and validates the token, then re-resolves the subject
	// against the user directory. Any failure yields a single opaque error.
	Resolve(ctx context.Context, token string) (*entity.User, error)
}

// ContextUserKey is the gin context key under which the resolved user is stored.
const ContextUserKey = "currentUser"

// AuthRequired returns a Gin middleware that restricts access to requests
// carrying a valid bearer token. The resolved user record is attached to the
// request context for downstream handlers; every failure mode answers 401
// with a re-authentication challenge and no internal detail.
func AuthRequired(resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			challenge(c)
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		// 2. Decode, validate and re-resolve the subject
		user, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			challenge(c)
			return
		}

		// 3. Attach the resolved identity and pass control on
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// challenge aborts the request with a 401 and a Bearer challenge header.
func challenge(c *gin.Context) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
}

// CurrentUser returns the identity resolved by AuthRequired for this request.
func CurrentUser(c *gin.Context) (*entity.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*entity.User)
	return user, ok
}
