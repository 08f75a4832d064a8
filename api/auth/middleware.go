package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"bistro/database"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ClaimsKey = "claims"
	EmailKey  = "email"
)

// Gate bundles the request-pipeline stages that may short-circuit a
// request before it reaches its handler.
type Gate struct {
	tokens *TokenManager
	db     database.DB
}

// NewGate creates a gate from a token manager and a user lookup store.
func NewGate(tokens *TokenManager, db database.DB) *Gate {
	return &Gate{tokens: tokens, db: db}
}

// RequireAuth verifies the credential in the Authorization header and
// attaches the decoded claims to the request context. The token is the
// second space-separated segment of the header value; the prefix literal
// is not validated.
func (g *Gate) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		parts := strings.Split(header, " ")
		if len(parts) < 2 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		claims, err := g.tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access"})
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(EmailKey, claims.Email)
		c.Next()
	}
}

// RequireAdmin looks up the verified identity's stored role and rejects
// unless it is admin. Composes after RequireAuth.
func (g *Gate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		user, err := g.db.GetUserByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
				return
			}
			log.Error("failed to load user for role check", "email", claims.Email, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
			return
		}
		if user.Role != database.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden access"})
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the claims attached by RequireAuth.
func ClaimsFromContext(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
