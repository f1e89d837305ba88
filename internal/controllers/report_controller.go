package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/middleware"
	"github.com/ethicraft/club-portal/internal/reports"
)

type ReportController struct {
	Reports *reports.Service
}

func (rc *ReportController) SessionAttendance(c *gin.Context) {
	out, err := rc.Reports.SessionAttendance(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (rc *ReportController) StudentOverview(c *gin.Context) {
	out, err := rc.Reports.StudentOverview(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// MyOverview is the student-facing performance trend for their own record.
func (rc *ReportController) MyOverview(c *gin.Context) {
	st, ok := middleware.StudentFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	out, err := rc.Reports.StudentOverview(c.Request.Context(), st.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (rc *ReportController) SummaryByMentor(c *gin.Context) {
	out, err := rc.Reports.SummaryByMentor(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": out})
}

func (rc *ReportController) SummaryByBranch(c *gin.Context) {
	out, err := rc.Reports.SummaryByBranch(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": out})
}

// ExportStudentsCSV streams the roster as a CSV download.
func (rc *ReportController) ExportStudentsCSV(c *gin.Context) {
	filename := fmt.Sprintf("ethicraft_students_%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := rc.Reports.ExportStudentsCSV(c.Request.Context(), c.Writer); err != nil {
		// headers are already out; all we can do is log via gin's error list
		_ = c.Error(err)
	}
}
