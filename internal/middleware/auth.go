package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ministerio-jovem/app-frequencia/internal/models"
	"github.com/ministerio-jovem/app-frequencia/internal/observability"
	"go.uber.org/zap"
)

// ClaimsKey is the gin context key holding *models.Claims of the authenticated account
const ClaimsKey = "claims"

// Auth failure messages returned to clients
const (
	MsgTokenNaoFornecido = "Acesso negado. Token não fornecido."
	MsgTokenInvalido     = "Token inválido ou expirado"
	MsgAdminNecessario   = "Acesso negado. Permissão de admin necessária."
)

// TokenParser verifies an access token and returns its claims
type TokenParser interface {
	Parse(token string) (*models.Claims, error)
}

// AuthMiddleware requires a valid bearer token and stores its claims in the context
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgTokenNaoFornecido})
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			observability.Logger().Debug("rejected access token",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgTokenInvalido})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth stores the claims of a bearer token when one is sent. Requests
// without a token pass through; a token that fails verification is rejected.
func OptionalAuth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgTokenInvalido})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireAdmin allows only tokens carrying the admin role. It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": MsgTokenNaoFornecido})
			return
		}

		if !claims.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": MsgAdminNecessario})
			return
		}

		c.Next()
	}
}

// GetClaims returns the claims stored by the auth middlewares, or nil
func GetClaims(c *gin.Context) *models.Claims {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil
	}
	claims, _ := value.(*models.Claims)
	return claims
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header
func bearerToken(header string) string {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
