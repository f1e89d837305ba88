package models

import (
	"time"
)

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	// AttendanceNotAttempted is never stored; it is the derived status of a
	// (student, session) pair with no row.
	AttendanceNotAttempted = "not_attempted"
)

// AttendanceRecord marks one student present (or absent) for one session.
// The composite unique index is the authoritative at-most-once guard: the
// check-in engine pre-checks, but a concurrent duplicate insert is rejected
// here, not in application code.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	StudentID string    `gorm:"uniqueIndex:idx_attendance_student_session" json:"student_id"`
	SessionID string    `gorm:"uniqueIndex:idx_attendance_student_session" json:"session_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
