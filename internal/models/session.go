package models

import (
	"time"
)

const (
	SessionUpcoming  = "upcoming"
	SessionActive    = "active"
	SessionCompleted = "completed"
)

var SessionStatuses = []string{SessionUpcoming, SessionActive, SessionCompleted}

var SessionTypes = []string{"Assessment", "Test", "Quiz", "Workshop"}

// Session is a scheduled club event ("DYS session"). The ID is a short
// human-readable handle chosen by the admin, e.g. "DYS1".
type Session struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Venue       string    `json:"venue"`
	Status      string    `json:"status"`
	Type        string    `json:"type"`
	Duration    string    `json:"duration"`
	TestLink    string    `json:"test_link,omitempty"`
	SessionCode string    `json:"session_code,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ValidSessionStatus(s string) bool {
	for _, v := range SessionStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ValidSessionType(t string) bool {
	for _, v := range SessionTypes {
		if v == t {
			return true
		}
	}
	return false
}
