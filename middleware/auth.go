// api/middleware/auth.go

package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/talentforge/hcm/api/config"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
	"github.com/talentforge/hcm/api/util"
)

// identityClaims is the token payload issued by the identity provider.
type identityClaims struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// Auth validates the bearer token and stores the caller identity on the
// request context. Role interpretation happens later in the policy layer;
// this middleware only establishes who is calling.
func Auth() gin.HandlerFunc {
	secret := []byte(config.GetString("auth.jwtSecret"))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &identityClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			logger.Warn("Rejected invalid token", zap.Error(err), zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		email := claims.Email
		if email == "" {
			email = claims.Subject
		}
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token carries no identity"})
			c.Abort()
			return
		}

		c.Set(util.IdentityContextKey, model.Identity{
			Email:    email,
			Username: claims.Name,
			Roles:    claims.Roles,
		})
		c.Next()
	}
}
