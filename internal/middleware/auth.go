package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/ethicraft/club-portal/internal/identity"
	"github.com/ethicraft/club-portal/internal/models"
)

type AuthConfig struct {
	JWTSecret string
}

// Claims is the JWT payload. Kind is "student" or "admin"; Subject is the
// student id for student tokens and the admin email for admin tokens.
type Claims struct {
	Kind  string `json:"kind"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

const (
	principalKey = "principal"
	studentKey   = "student"
)

func AuthMiddleware(db *gorm.DB, cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(auth[len("Bearer "):])

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		p := identity.Principal{Kind: identity.Kind(claims.Kind), ID: claims.Subject}
		switch p.Kind {
		case identity.KindStudent:
			var st models.Student
			if err := db.First(&st, "id = ?", p.ID).Error; err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "student not found"})
				return
			}
			c.Set(studentKey, st)
		case identity.KindAdmin:
			// admin is config-backed; there is no row to load
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireKinds gates a route group to the given principal kinds.
func RequireKinds(kinds ...identity.Kind) gin.HandlerFunc {
	allowed := map[identity.Kind]struct{}{}
	for _, k := range kinds {
		allowed[k] = struct{}{}
	}
	return func(c *gin.Context) {
		p, ok := principalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if _, ok := allowed[p.Kind]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the authenticated principal, or the anonymous zero
// value on unauthenticated routes.
func PrincipalFrom(c *gin.Context) identity.Principal {
	p, _ := principalFrom(c)
	return p
}

func principalFrom(c *gin.Context) (identity.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return identity.Principal{}, false
	}
	p, ok := v.(identity.Principal)
	return p, ok
}

// StudentFrom returns the student row loaded for a student token.
func StudentFrom(c *gin.Context) (models.Student, bool) {
	v, ok := c.Get(studentKey)
	if !ok {
		return models.Student{}, false
	}
	st, ok := v.(models.Student)
	return st, ok
}
