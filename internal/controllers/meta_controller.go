package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/students"
)

// MetaController exposes the fixed option sets registration and authoring
// forms render: branches, mentors, session statuses and types.
type MetaController struct{}

func (mc *MetaController) Get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"branches":         students.Branches,
		"mentors":          students.Mentors,
		"session_statuses": models.SessionStatuses,
		"session_types":    models.SessionTypes,
	})
}
