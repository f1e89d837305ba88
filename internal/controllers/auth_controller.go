package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/ethicraft/club-portal/internal/identity"
	"github.com/ethicraft/club-portal/internal/metrics"
	"github.com/ethicraft/club-portal/internal/middleware"
)

type AuthController struct {
	Identity  *identity.Service
	JWTSecret string
	TTL       time.Duration
}

type studentLoginRequest struct {
	Email     string `json:"email" binding:"required"`
	PrnNumber string `json:"prn_number" binding:"required"`
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) StudentLogin(c *gin.Context) {
	var req studentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := a.activePrincipal(c)
	st, err := a.Identity.LoginStudent(c.Request.Context(), active, req.Email, req.PrnNumber)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("student", "failure").Inc()
		respondErr(c, err)
		return
	}
	token, err := a.issueToken(identity.KindStudent, st.ID, st.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.LoginsTotal.WithLabelValues("student", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(a.TTL.Seconds()),
		"student":      st,
	})
}

func (a *AuthController) AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := a.activePrincipal(c)
	if err := a.Identity.LoginAdmin(c.Request.Context(), active, req.Email, req.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("admin", "failure").Inc()
		respondErr(c, err)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	token, err := a.issueToken(identity.KindAdmin, email, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	metrics.LoginsTotal.WithLabelValues("admin", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   int(a.TTL.Seconds()),
	})
}

// Logout reports the views the client must drop along with its token. The
// token itself simply expires; there is no server-side session to clear.
func (a *AuthController) Logout(c *gin.Context) {
	invalidated := a.Identity.Logout(middleware.PrincipalFrom(c))
	c.JSON(http.StatusOK, gin.H{
		"message":     "logged out",
		"invalidated": invalidated,
	})
}

// Me re-reads the authoritative student record so the client picks up side
// effects of other operations without re-login.
func (a *AuthController) Me(c *gin.Context) {
	p := middleware.PrincipalFrom(c)
	if p.Kind == identity.KindAdmin {
		c.JSON(http.StatusOK, gin.H{"kind": "admin", "email": p.ID})
		return
	}
	st, err := a.Identity.Refresh(c.Request.Context(), p.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kind": "student", "student": st})
}

func (a *AuthController) issueToken(kind identity.Kind, subject, email string) (string, error) {
	now := time.Now().UTC()
	claims := middleware.Claims{
		Kind:  string(kind),
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.TTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.JWTSecret))
}

// activePrincipal recovers the principal from an optional bearer token on
// login routes, enforcing the one-kind-at-a-time rule without requiring
// auth middleware on public endpoints.
func (a *AuthController) activePrincipal(c *gin.Context) identity.Principal {
	auth := c.GetHeader("Authorization")
	if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return identity.Principal{}
	}
	tokenStr := strings.TrimSpace(auth[len("Bearer "):])
	claims := &middleware.Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(a.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return identity.Principal{}
	}
	return identity.Principal{Kind: identity.Kind(claims.Kind), ID: claims.Subject}
}
