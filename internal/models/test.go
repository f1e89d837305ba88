package models

import (
	"time"
)

// Test is the multiple-choice paper bound to one session. At most one test
// exists per session (uniqueIndex on session_id).
type Test struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"uniqueIndex" json:"session_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Question struct {
	ID            string   `gorm:"primaryKey" json:"id"`
	TestID        string   `gorm:"index" json:"test_id"`
	Text          string   `gorm:"column:question" json:"question"`
	Options       []string `gorm:"serializer:json;type:jsonb" json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Position      int      `json:"position"`
}
