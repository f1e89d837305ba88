package models

import (
	"time"
)

// TestScore is the upserted submission result for one student on one
// session's test. Score is always a rounded percentage (0-100). Answers keeps
// the selected option indices, one per question; partial or out-of-range
// submissions are rejected before anything is stored.
type TestScore struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	StudentID string    `gorm:"uniqueIndex:idx_score_student_session_test" json:"student_id"`
	SessionID string    `gorm:"uniqueIndex:idx_score_student_session_test" json:"session_id"`
	TestID    string    `gorm:"uniqueIndex:idx_score_student_session_test" json:"test_id"`
	Score     int       `json:"score"`
	Answers   []int     `gorm:"serializer:json;type:jsonb" json:"answers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
