package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ethicraft/club-portal/internal/metrics"
	"github.com/ethicraft/club-portal/internal/middleware"
	"github.com/ethicraft/club-portal/internal/quiz"
	"github.com/ethicraft/club-portal/internal/sessions"
)

type TestController struct {
	Quiz     *quiz.Service
	Sessions *sessions.Service
}

// GetTest serves the quiz form to a student. Correct answers never leave
// the server on this path.
func (tc *TestController) GetTest(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}
	loaded, err := tc.Quiz.LoadTest(c.Request.Context(), c.Param("id"), sessionID)
	if err != nil {
		respondErr(c, err)
		return
	}
	questions := make([]gin.H, len(loaded.Questions))
	for i, q := range loaded.Questions {
		questions[i] = gin.H{
			"id":       q.ID,
			"question": q.Text,
			"options":  q.Options,
			"position": q.Position,
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"id":         loaded.Test.ID,
		"session_id": loaded.Test.SessionID,
		"title":      loaded.Test.Title,
		"questions":  questions,
	})
}

type submitRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Answers   []int  `json:"answers" binding:"required"`
}

func (tc *TestController) Submit(c *gin.Context) {
	st, ok := middleware.StudentFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := tc.Quiz.SubmitAnswers(c.Request.Context(), st.ID, c.Param("id"), req.SessionID, req.Answers)
	if err != nil {
		metrics.TestSubmissionsTotal.WithLabelValues("rejected").Inc()
		respondErr(c, err)
		return
	}
	metrics.TestSubmissionsTotal.WithLabelValues("accepted").Inc()
	c.JSON(http.StatusOK, gin.H{
		"score":          sub.Score.Score,
		"correct":        sub.Correct,
		"total":          sub.Total,
		"affected_views": sub.Affected,
	})
}

// MyScores returns the session-id keyed percentage map for the student's
// scoreboard.
func (tc *TestController) MyScores(c *gin.Context) {
	st, ok := middleware.StudentFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	scores, err := tc.Quiz.ScoresForStudent(c.Request.Context(), st.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"scores": scores})
}

type questionPayload struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer *int     `json:"correct_answer" binding:"required"`
}

type replaceTestRequest struct {
	Title     string            `json:"title" binding:"required"`
	Questions []questionPayload `json:"questions" binding:"required"`
}

// ReplaceTest is the admin authoring path: the previous question set is
// dropped and the submitted one takes its place.
func (tc *TestController) ReplaceTest(c *gin.Context) {
	var req replaceTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	inputs := make([]sessions.QuestionInput, len(req.Questions))
	for i, q := range req.Questions {
		inputs[i] = sessions.QuestionInput{
			Text:          q.Question,
			Options:       q.Options,
			CorrectAnswer: *q.CorrectAnswer,
		}
	}
	test, questions, err := tc.Sessions.ReplaceTest(c.Request.Context(), c.Param("id"), req.Title, inputs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"test": test, "questions": questions})
}

// GetAuthoring returns the test with correct answers for the admin editor,
// regardless of session status.
func (tc *TestController) GetAuthoring(c *gin.Context) {
	test, questions, err := tc.Sessions.TestWithQuestions(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"test": test, "questions": questions})
}

func (tc *TestController) DeleteTest(c *gin.Context) {
	if err := tc.Sessions.DeleteTest(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "test deleted"})
}
