package controllers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/middleware"
	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/students"
)

type StudentController struct {
	Students *students.Service
}

type registerRequest struct {
	FirstName    string         `json:"first_name" binding:"required"`
	MiddleName   string         `json:"middle_name"`
	LastName     string         `json:"last_name" binding:"required"`
	Email        string         `json:"email" binding:"required,email"`
	RollNumber   string         `json:"roll_number" binding:"required"`
	PrnNumber    string         `json:"prn_number" binding:"required"`
	DateOfBirth  string         `json:"date_of_birth" binding:"required"`
	Branch       string         `json:"branch" binding:"required"`
	Division     string         `json:"division" binding:"required"`
	Gender       string         `json:"gender" binding:"required"`
	Address      string         `json:"address"`
	SgpaSem1     FlexibleString `json:"sgpa_sem1"`
	SgpaSem2     FlexibleString `json:"sgpa_sem2"`
	ProfilePhoto string         `json:"profile_photo"`
}

func (sc *StudentController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := sc.Students.Register(c.Request.Context(), students.RegisterInput{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Email:        req.Email,
		RollNumber:   req.RollNumber,
		PrnNumber:    req.PrnNumber,
		DateOfBirth:  req.DateOfBirth,
		Branch:       req.Branch,
		Division:     req.Division,
		Gender:       req.Gender,
		Address:      req.Address,
		SgpaSem1:     req.SgpaSem1.String(),
		SgpaSem2:     req.SgpaSem2.String(),
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

type updateProfileRequest struct {
	FirstName    *string         `json:"first_name"`
	MiddleName   *string         `json:"middle_name"`
	LastName     *string         `json:"last_name"`
	Email        *string         `json:"email"`
	RollNumber   *string         `json:"roll_number"`
	DateOfBirth  *string         `json:"date_of_birth"`
	Branch       *string         `json:"branch"`
	Division     *string         `json:"division"`
	Gender       *string         `json:"gender"`
	Address      *string         `json:"address"`
	SgpaSem1     *FlexibleString `json:"sgpa_sem1"`
	SgpaSem2     *FlexibleString `json:"sgpa_sem2"`
	ProfilePhoto *string         `json:"profile_photo"`
}

// UpdateMe lets a student edit their own profile.
func (sc *StudentController) UpdateMe(c *gin.Context) {
	st, ok := middleware.StudentFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := sc.Students.UpdateProfile(c.Request.Context(), st.ID, students.ProfileUpdate{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		Email:        req.Email,
		RollNumber:   req.RollNumber,
		DateOfBirth:  req.DateOfBirth,
		Branch:       req.Branch,
		Division:     req.Division,
		Gender:       req.Gender,
		Address:      req.Address,
		SgpaSem1:     flexPtr(req.SgpaSem1),
		SgpaSem2:     flexPtr(req.SgpaSem2),
		ProfilePhoto: req.ProfilePhoto,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// List is the admin roster with the dashboard's filters applied in-process:
// q matches name/email/roll, plus branch, mentor and paid filters.
func (sc *StudentController) List(c *gin.Context) {
	all, err := sc.Students.List(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	q := strings.ToLower(strings.TrimSpace(c.Query("q")))
	branch := strings.TrimSpace(c.Query("branch"))
	mentor := strings.TrimSpace(c.Query("mentor"))
	paidStr := strings.ToLower(strings.TrimSpace(c.Query("paid")))

	filtered := make([]models.Student, 0, len(all))
	for _, st := range all {
		if q != "" && !matchesQuery(st, q) {
			continue
		}
		if branch != "" && st.Branch != branch {
			continue
		}
		if mentor != "" && !strings.EqualFold(st.Mentor, mentor) {
			continue
		}
		switch paidStr {
		case "":
		case "true", "1":
			if !st.IsPaid {
				continue
			}
		case "false", "0":
			if st.IsPaid {
				continue
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid paid value"})
			return
		}
		filtered = append(filtered, st)
	}

	switch strings.ToLower(c.DefaultQuery("sort_by", "name")) {
	case "registered":
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].RegistrationDate.After(filtered[j].RegistrationDate)
		})
	default:
		sort.Slice(filtered, func(i, j int) bool {
			return filtered[i].FirstName < filtered[j].FirstName
		})
	}

	c.JSON(http.StatusOK, gin.H{"students": filtered, "total": len(filtered)})
}

func (sc *StudentController) Get(c *gin.Context) {
	st, err := sc.Students.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

type setPaidRequest struct {
	IsPaid *bool `json:"is_paid" binding:"required"`
}

func (sc *StudentController) SetPaid(c *gin.Context) {
	var req setPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	st, err := sc.Students.SetPaid(c.Request.Context(), c.Param("id"), *req.IsPaid)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

func (sc *StudentController) Delete(c *gin.Context) {
	if err := sc.Students.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func matchesQuery(st models.Student, q string) bool {
	for _, field := range []string{st.FirstName, st.MiddleName, st.LastName, st.Email, st.RollNumber, st.PrnNumber} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func flexPtr(fs *FlexibleString) *string {
	if fs == nil {
		return nil
	}
	s := fs.String()
	return &s
}
