package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserID is the gin context key holding the authenticated user id.
	ContextUserID = "user_id"
	// ContextUserEmail is the gin context key holding the token email claim.
	ContextUserEmail = "user_email"
)

// AuthClaims are the claims we read from the hosted auth provider's
// access token. The subject is the provider-side user id (a UUID).
type AuthClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Auth validates the Bearer token issued by the hosted auth provider and
// puts the user id into the request context. Session management itself is
// fully delegated to the provider; we only verify its signature.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: bearer token required"})
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: malformed authorization header"})
			return
		}

		claims := &AuthClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: invalid token"})
			return
		}

		if claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: token has no subject"})
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the authenticated user id from the gin context.
func UserID(c *gin.Context) string {
	if v, exists := c.Get(ContextUserID); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
