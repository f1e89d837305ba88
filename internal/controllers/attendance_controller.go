package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/attendance"
	"github.com/ethicraft/club-portal/internal/metrics"
	"github.com/ethicraft/club-portal/internal/middleware"
)

type AttendanceController struct {
	Attendance *attendance.Service
}

type checkinRequest struct {
	SessionID   string `json:"session_id" binding:"required"`
	SessionCode string `json:"session_code" binding:"required"`
}

func (ac *AttendanceController) CheckIn(c *gin.Context) {
	st, ok := middleware.StudentFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req checkinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.Attendance.MarkAttendance(c.Request.Context(), st.ID, req.SessionID, req.SessionCode)
	if err != nil {
		metrics.CheckinsTotal.WithLabelValues(checkinLabel(err)).Inc()
		respondErr(c, err)
		return
	}
	metrics.CheckinsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message":        "attendance marked",
		"record":         result.Record,
		"affected_views": result.Affected,
	})
}

// ListMine returns the session-id keyed status map for the student's own
// dashboard.
func (ac *AttendanceController) ListMine(c *gin.Context) {
	st, ok := middleware.StudentFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	statuses, err := ac.Attendance.StatusesForStudent(c.Request.Context(), st.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendance": statuses})
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus is the admin override: sets one student's status on one session
// to present, absent or not_attempted, no code required.
func (ac *AttendanceController) SetStatus(c *gin.Context) {
	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := ac.Attendance.SetStatus(c.Request.Context(), c.Param("student_id"), c.Param("id"), req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":         result.Record,
		"affected_views": result.Affected,
	})
}

func checkinLabel(err error) string {
	switch {
	case errors.Is(err, attendance.ErrSessionNotConfigured):
		return "not_configured"
	case errors.Is(err, attendance.ErrCodeMismatch):
		return "code_mismatch"
	case errors.Is(err, attendance.ErrAlreadyMarked):
		return "already_marked"
	default:
		return "error"
	}
}
