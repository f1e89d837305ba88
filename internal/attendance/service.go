package attendance

import (
	"context"
	"errors"
	"strings"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/views"
)

var (
	ErrSessionNotConfigured = errors.New("session has no check-in code configured")
	ErrSessionNotFound      = errors.New("session not found")
	ErrCodeMismatch         = errors.New("session code does not match")
	ErrAlreadyMarked        = errors.New("attendance already marked for this session")
	ErrInvalidStatus        = errors.New("invalid attendance status")

	// ErrDuplicateRecord is what RecordStore.InsertRecord returns when the
	// storage-layer (student_id, session_id) uniqueness constraint rejects
	// the row. The engine maps it to ErrAlreadyMarked: the constraint, not
	// the pre-read, is the authoritative guard.
	ErrDuplicateRecord = errors.New("attendance record already exists")
)

type SessionGetter interface {
	GetSession(ctx context.Context, id string) (*models.Session, error)
}

type RecordStore interface {
	GetRecord(ctx context.Context, studentID, sessionID string) (*models.AttendanceRecord, error)
	InsertRecord(ctx context.Context, rec *models.AttendanceRecord) error
	// UpsertRecord writes the status keyed by (student_id, session_id), so
	// status transitions never trip the uniqueness constraint.
	UpsertRecord(ctx context.Context, rec *models.AttendanceRecord) error
	DeleteRecord(ctx context.Context, studentID, sessionID string) error
	ListRecordsByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

// Service gates self-service check-in behind the session's shared code.
type Service struct {
	sessions SessionGetter
	records  RecordStore
}

func NewService(sessions SessionGetter, records RecordStore) *Service {
	return &Service{sessions: sessions, records: records}
}

// CheckinResult carries the persisted record and the views it invalidated.
type CheckinResult struct {
	Record   models.AttendanceRecord
	Affected []views.View
}

// MarkAttendance validates the submitted code and records a "present" mark.
// A pair already marked present is rejected before the code is even compared,
// so a re-attempt with a stale code still reports the more useful error. An
// admin-recorded "absent" row does not block: the code gate applies and the
// row is flipped to present in place.
func (s *Service) MarkAttendance(ctx context.Context, studentID, sessionID, code string) (*CheckinResult, error) {
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || strings.TrimSpace(sess.SessionCode) == "" {
		return nil, ErrSessionNotConfigured
	}

	existing, err := s.records.GetRecord(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Status == models.AttendancePresent {
		return nil, ErrAlreadyMarked
	}

	if !codesEqual(sess.SessionCode, code) {
		return nil, ErrCodeMismatch
	}

	if existing != nil {
		existing.Status = models.AttendancePresent
		if err := s.records.UpsertRecord(ctx, existing); err != nil {
			return nil, err
		}
		return &CheckinResult{
			Record:   *existing,
			Affected: []views.View{views.Attendance, views.Scoreboard},
		}, nil
	}

	rec := &models.AttendanceRecord{
		StudentID: studentID,
		SessionID: sessionID,
		Status:    models.AttendancePresent,
	}
	if err := s.records.InsertRecord(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicateRecord) {
			return nil, ErrAlreadyMarked
		}
		return nil, err
	}
	return &CheckinResult{
		Record:   *rec,
		Affected: []views.View{views.Attendance, views.Scoreboard},
	}, nil
}

// SetStatus is the admin override: any status, no code gate. Setting
// "not_attempted" removes the row, matching its derived meaning.
func (s *Service) SetStatus(ctx context.Context, studentID, sessionID, status string) (*CheckinResult, error) {
	switch status {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceNotAttempted:
	default:
		return nil, ErrInvalidStatus
	}
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}

	affected := []views.View{views.Attendance, views.Scoreboard}
	if status == models.AttendanceNotAttempted {
		if err := s.records.DeleteRecord(ctx, studentID, sessionID); err != nil {
			return nil, err
		}
		return &CheckinResult{
			Record:   models.AttendanceRecord{StudentID: studentID, SessionID: sessionID, Status: status},
			Affected: affected,
		}, nil
	}

	rec := &models.AttendanceRecord{
		StudentID: studentID,
		SessionID: sessionID,
		Status:    status,
	}
	if err := s.records.UpsertRecord(ctx, rec); err != nil {
		return nil, err
	}
	return &CheckinResult{Record: *rec, Affected: affected}, nil
}

// StatusFor reports the stored status for a pair, or "not_attempted" when no
// record exists.
func (s *Service) StatusFor(ctx context.Context, studentID, sessionID string) (string, error) {
	rec, err := s.records.GetRecord(ctx, studentID, sessionID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return models.AttendanceNotAttempted, nil
	}
	return rec.Status, nil
}

// StatusesForStudent returns a session-id keyed status map for dashboards.
func (s *Service) StatusesForStudent(ctx context.Context, studentID string) (map[string]string, error) {
	recs, err := s.records.ListRecordsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(recs))
	for _, r := range recs {
		out[r.SessionID] = r.Status
	}
	return out, nil
}

func codesEqual(stored, submitted string) bool {
	return strings.EqualFold(strings.TrimSpace(stored), strings.TrimSpace(submitted))
}
