package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/sessions"
)

type SessionController struct {
	Sessions *sessions.Service
}

// ListPublic serves the session calendar without auth. Codes are shared
// secrets distributed in person, so they are stripped here.
func (sc *SessionController) ListPublic(c *gin.Context) {
	list, err := sc.Sessions.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	for i := range list {
		list[i].SessionCode = ""
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list, "total": len(list)})
}

// List is the admin view, codes included.
func (sc *SessionController) List(c *gin.Context) {
	list, err := sc.Sessions.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": list, "total": len(list)})
}

func (sc *SessionController) Get(c *gin.Context) {
	sess, err := sc.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

type createSessionRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Venue       string `json:"venue"`
	Status      string `json:"status"`
	Type        string `json:"type"`
	Duration    string `json:"duration"`
	TestLink    string `json:"test_link"`
	SessionCode string `json:"session_code"`
}

func (sc *SessionController) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := sc.Sessions.Create(c.Request.Context(), sessions.SessionInput{
		ID:          req.ID,
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Venue:       req.Venue,
		Status:      req.Status,
		Type:        req.Type,
		Duration:    req.Duration,
		TestLink:    req.TestLink,
		SessionCode: req.SessionCode,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

type updateSessionRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Venue       *string `json:"venue"`
	Status      *string `json:"status"`
	Type        *string `json:"type"`
	Duration    *string `json:"duration"`
	TestLink    *string `json:"test_link"`
}

func (sc *SessionController) Update(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := sc.Sessions.Update(c.Request.Context(), c.Param("id"), sessions.SessionUpdate{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Venue:       req.Venue,
		Status:      req.Status,
		Type:        req.Type,
		Duration:    req.Duration,
		TestLink:    req.TestLink,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

func (sc *SessionController) Delete(c *gin.Context) {
	if err := sc.Sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

// RegenerateCode assigns a fresh check-in code to the session.
func (sc *SessionController) RegenerateCode(c *gin.Context) {
	code, err := sc.Sessions.RegenerateCode(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_code": code})
}
