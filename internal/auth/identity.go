package auth

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

const ctxIdentity = "auth_identity"

// Identity is the authenticated caller for the lifetime of one request.
// The middleware below is its only writer; handlers and services read it
// through CurrentIdentity. It is discarded with the request context.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// RequireAuth validates the Firebase ID token on the request and installs
// the caller's Identity in the Gin context. Requests without a valid token
// are rejected before any store call happens.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		identity := Identity{UID: decoded.UID}
		if email, ok := decoded.Claims["email"].(string); ok {
			identity.Email = email
		}
		c.Set(ctxIdentity, identity)

		c.Next()
	}
}

// CurrentIdentity returns the identity installed by RequireAuth. The second
// return is false on routes that never passed through the middleware.
func CurrentIdentity(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ctxIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	if !ok || id.UID == "" {
		return Identity{}, false
	}
	return id, true
}

// WithIdentity installs a fixed identity without token verification.
// Use this ONLY in tests and local development.
func WithIdentity(id Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxIdentity, id)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
