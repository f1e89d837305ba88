package reports

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/quiz"
)

var ErrNotFound = errors.New("record not found")

// Store is the read-only slice of storage the analytics engine aggregates
// over. Every call refetches; nothing is cached here.
type Store interface {
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	ListRecordsBySession(ctx context.Context, sessionID string) ([]models.AttendanceRecord, error)
	ListRecordsByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
	ListScoresByStudent(ctx context.Context, studentID string) ([]models.TestScore, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// SessionAttendance is the donut-chart payload for one session.
type SessionAttendance struct {
	SessionID      string `json:"session_id"`
	SessionName    string `json:"session_name"`
	TotalStudents  int    `json:"total_students"`
	Present        int    `json:"present"`
	Absent         int    `json:"absent"`
	NotAttempted   int    `json:"not_attempted"`
	PresentPercent int    `json:"present_percent"`
}

func (s *Service) SessionAttendance(ctx context.Context, sessionID string) (*SessionAttendance, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRecordsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := &SessionAttendance{
		SessionID:     sess.ID,
		SessionName:   sess.Name,
		TotalStudents: len(students),
	}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			out.Present++
		case models.AttendanceAbsent:
			out.Absent++
		}
	}
	out.NotAttempted = out.TotalStudents - out.Present - out.Absent
	if out.NotAttempted < 0 {
		out.NotAttempted = 0
	}
	out.PresentPercent = quiz.Percentage(out.Present, out.TotalStudents)
	return out, nil
}

// SessionOutcome is one row of a student's per-session history.
type SessionOutcome struct {
	SessionID   string `json:"session_id"`
	SessionName string `json:"session_name"`
	Status      string `json:"status"`
	Score       *int   `json:"score,omitempty"`
}

// StudentOverview is the performance-trend payload for one student.
type StudentOverview struct {
	StudentID         string           `json:"student_id"`
	Name              string           `json:"name"`
	Sessions          []SessionOutcome `json:"sessions"`
	AttendancePercent int              `json:"attendance_percent"`
	AverageScore      int              `json:"average_score"`
}

func (s *Service) StudentOverview(ctx context.Context, studentID string) (*StudentOverview, error) {
	st, err := s.store.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	sessions, err := s.store.ListSessions(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRecordsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	scores, err := s.store.ListScoresByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	statusBySession := make(map[string]string, len(records))
	for _, r := range records {
		statusBySession[r.SessionID] = r.Status
	}
	scoreBySession := make(map[string]int, len(scores))
	for _, r := range scores {
		scoreBySession[r.SessionID] = r.Score
	}

	out := &StudentOverview{
		StudentID: st.ID,
		Name:      fullName(*st),
	}
	present := 0
	scoreSum, scoreCount := 0, 0
	for _, sess := range sessions {
		row := SessionOutcome{
			SessionID:   sess.ID,
			SessionName: sess.Name,
			Status:      models.AttendanceNotAttempted,
		}
		if status, ok := statusBySession[sess.ID]; ok {
			row.Status = status
			if status == models.AttendancePresent {
				present++
			}
		}
		if score, ok := scoreBySession[sess.ID]; ok {
			v := score
			row.Score = &v
			scoreSum += score
			scoreCount++
		}
		out.Sessions = append(out.Sessions, row)
	}
	out.AttendancePercent = quiz.Percentage(present, len(sessions))
	if scoreCount > 0 {
		out.AverageScore = int(math.Round(float64(scoreSum) / float64(scoreCount)))
	}
	return out, nil
}

// GroupSummary is one bucket of a roster grouping.
type GroupSummary struct {
	Group    string `json:"group"`
	Students int    `json:"students"`
	Paid     int    `json:"paid"`
}

func (s *Service) SummaryByMentor(ctx context.Context) ([]GroupSummary, error) {
	return s.groupBy(ctx, func(st models.Student) string { return st.Mentor })
}

func (s *Service) SummaryByBranch(ctx context.Context) ([]GroupSummary, error) {
	return s.groupBy(ctx, func(st models.Student) string { return st.Branch })
}

func (s *Service) groupBy(ctx context.Context, key func(models.Student) string) ([]GroupSummary, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return nil, err
	}
	buckets := map[string]*GroupSummary{}
	for _, st := range students {
		k := key(st)
		b, ok := buckets[k]
		if !ok {
			b = &GroupSummary{Group: k}
			buckets[k] = b
		}
		b.Students++
		if st.IsPaid {
			b.Paid++
		}
	}
	out := make([]GroupSummary, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out, nil
}

var csvHeader = []string{
	"id", "first_name", "middle_name", "last_name", "email", "roll_number",
	"prn_number", "date_of_birth", "branch", "division", "gender",
	"mentor", "is_paid", "registration_date",
}

// ExportStudentsCSV streams the full roster as CSV.
func (s *Service) ExportStudentsCSV(ctx context.Context, w io.Writer) error {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, st := range students {
		row := []string{
			st.ID, st.FirstName, st.MiddleName, st.LastName, st.Email,
			st.RollNumber, st.PrnNumber, st.DateOfBirth, st.Branch,
			st.Division, st.Gender, st.Mentor,
			strconv.FormatBool(st.IsPaid),
			st.RegistrationDate.Format("2006-01-02"),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fullName(st models.Student) string {
	name := st.FirstName
	if st.MiddleName != "" {
		name = fmt.Sprintf("%s %s", name, st.MiddleName)
	}
	if st.LastName != "" {
		name = fmt.Sprintf("%s %s", name, st.LastName)
	}
	return name
}
