package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/attendance"
	"github.com/ethicraft/club-portal/internal/identity"
	"github.com/ethicraft/club-portal/internal/quiz"
	"github.com/ethicraft/club-portal/internal/reports"
	"github.com/ethicraft/club-portal/internal/sessions"
	"github.com/ethicraft/club-portal/internal/students"
)

// respondErr maps engine errors onto HTTP statuses. Anything unrecognized is
// a storage/transport failure: surfaced with its message, never swallowed.
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, identity.ErrPrincipalActive),
		errors.Is(err, attendance.ErrAlreadyMarked),
		errors.Is(err, attendance.ErrSessionNotConfigured),
		errors.Is(err, students.ErrDuplicate),
		errors.Is(err, sessions.ErrExists):
		status = http.StatusConflict
	case errors.Is(err, attendance.ErrCodeMismatch),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, quiz.ErrAnswerCount),
		errors.Is(err, quiz.ErrAnswerRange),
		errors.Is(err, students.ErrValidation),
		errors.Is(err, sessions.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, quiz.ErrUnavailable),
		errors.Is(err, attendance.ErrSessionNotFound),
		errors.Is(err, identity.ErrNotFound),
		errors.Is(err, students.ErrNotFound),
		errors.Is(err, sessions.ErrNotFound),
		errors.Is(err, sessions.ErrNoTest),
		errors.Is(err, reports.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
