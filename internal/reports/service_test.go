package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/ethicraft/club-portal/internal/models"
)

type fakeStore struct {
	students []models.Student
	sessions []models.Session
	records  []models.AttendanceRecord
	scores   []models.TestScore
}

func (f *fakeStore) GetStudent(_ context.Context, id string) (*models.Student, error) {
	for _, st := range f.students {
		if st.ID == id {
			cp := st
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListStudents(_ context.Context) ([]models.Student, error) {
	return append([]models.Student(nil), f.students...), nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	for _, sess := range f.sessions {
		if sess.ID == id {
			cp := sess
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) ListSessions(_ context.Context) ([]models.Session, error) {
	return append([]models.Session(nil), f.sessions...), nil
}

func (f *fakeStore) ListRecordsBySession(_ context.Context, sessionID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.SessionID == sessionID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecordsByStudent(_ context.Context, studentID string) ([]models.AttendanceRecord, error) {
	var out []models.AttendanceRecord
	for _, r := range f.records {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListScoresByStudent(_ context.Context, studentID string) ([]models.TestScore, error) {
	var out []models.TestScore
	for _, r := range f.scores {
		if r.StudentID == studentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func seededStore() *fakeStore {
	return &fakeStore{
		students: []models.Student{
			{ID: "s1", FirstName: "Asha", LastName: "Rao", Mentor: "Kaushik", Branch: "IT", IsPaid: true,
				RegistrationDate: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "s2", FirstName: "Ravi", MiddleName: "K", LastName: "Patil", Mentor: "Kaushik", Branch: "CE"},
			{ID: "s3", FirstName: "Neha", LastName: "Shah", Mentor: "Darshan", Branch: "IT", IsPaid: true},
		},
		sessions: []models.Session{
			{ID: "DYS1", Name: "Discover Your Strengths"},
			{ID: "DYS2", Name: "Goal Setting"},
		},
		records: []models.AttendanceRecord{
			{StudentID: "s1", SessionID: "DYS1", Status: models.AttendancePresent},
			{StudentID: "s2", SessionID: "DYS1", Status: models.AttendanceAbsent},
			{StudentID: "s1", SessionID: "DYS2", Status: models.AttendancePresent},
		},
		scores: []models.TestScore{
			{StudentID: "s1", SessionID: "DYS1", Score: 80},
			{StudentID: "s1", SessionID: "DYS2", Score: 50},
		},
	}
}

func TestSessionAttendance(t *testing.T) {
	svc := NewService(seededStore())

	got, err := svc.SessionAttendance(context.Background(), "DYS1")
	if err != nil {
		t.Fatalf("SessionAttendance: %v", err)
	}
	if got.TotalStudents != 3 || got.Present != 1 || got.Absent != 1 || got.NotAttempted != 1 {
		t.Errorf("counts = %+v", got)
	}
	if got.PresentPercent != 33 {
		t.Errorf("present_percent = %d, want 33", got.PresentPercent)
	}
	if got.SessionName != "Discover Your Strengths" {
		t.Errorf("session_name = %q", got.SessionName)
	}
}

func TestSessionAttendanceMissing(t *testing.T) {
	svc := NewService(seededStore())
	if _, err := svc.SessionAttendance(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStudentOverview(t *testing.T) {
	svc := NewService(seededStore())

	got, err := svc.StudentOverview(context.Background(), "s1")
	if err != nil {
		t.Fatalf("StudentOverview: %v", err)
	}
	if got.Name != "Asha Rao" {
		t.Errorf("name = %q", got.Name)
	}
	if len(got.Sessions) != 2 {
		t.Fatalf("sessions = %d, want one row per session", len(got.Sessions))
	}
	if got.AttendancePercent != 100 {
		t.Errorf("attendance_percent = %d, want 100", got.AttendancePercent)
	}
	if got.AverageScore != 65 {
		t.Errorf("average_score = %d, want 65", got.AverageScore)
	}
	if got.Sessions[0].Score == nil || *got.Sessions[0].Score != 80 {
		t.Errorf("first row score = %v", got.Sessions[0].Score)
	}
}

func TestStudentOverviewAverageRounds(t *testing.T) {
	store := seededStore()
	store.scores = []models.TestScore{
		{StudentID: "s1", SessionID: "DYS1", Score: 80},
		{StudentID: "s1", SessionID: "DYS2", Score: 51},
	}
	svc := NewService(store)

	got, err := svc.StudentOverview(context.Background(), "s1")
	if err != nil {
		t.Fatalf("StudentOverview: %v", err)
	}
	if got.AverageScore != 66 {
		t.Errorf("average_score = %d, want 66 (65.5 rounds up, not truncates)", got.AverageScore)
	}
}

func TestStudentOverviewNoActivity(t *testing.T) {
	svc := NewService(seededStore())

	got, err := svc.StudentOverview(context.Background(), "s3")
	if err != nil {
		t.Fatalf("StudentOverview: %v", err)
	}
	if got.AttendancePercent != 0 || got.AverageScore != 0 {
		t.Errorf("got %+v, want zero aggregates", got)
	}
	for _, row := range got.Sessions {
		if row.Status != models.AttendanceNotAttempted {
			t.Errorf("session %s status = %q", row.SessionID, row.Status)
		}
		if row.Score != nil {
			t.Errorf("session %s has a score", row.SessionID)
		}
	}
}

func TestSummaryByMentor(t *testing.T) {
	svc := NewService(seededStore())

	got, err := svc.SummaryByMentor(context.Background())
	if err != nil {
		t.Fatalf("SummaryByMentor: %v", err)
	}
	want := []GroupSummary{
		{Group: "Darshan", Students: 1, Paid: 1},
		{Group: "Kaushik", Students: 2, Paid: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("groups = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("group %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSummaryByBranch(t *testing.T) {
	svc := NewService(seededStore())

	got, err := svc.SummaryByBranch(context.Background())
	if err != nil {
		t.Fatalf("SummaryByBranch: %v", err)
	}
	if len(got) != 2 || got[0].Group != "CE" || got[1].Group != "IT" || got[1].Students != 2 {
		t.Errorf("groups = %+v", got)
	}
}

func TestExportStudentsCSV(t *testing.T) {
	svc := NewService(seededStore())

	var buf bytes.Buffer
	if err := svc.ExportStudentsCSV(context.Background(), &buf); err != nil {
		t.Fatalf("ExportStudentsCSV: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want header plus 3 students", len(rows))
	}
	if rows[0][0] != "id" || rows[0][len(rows[0])-1] != "registration_date" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "s1" || rows[1][12] != "true" || rows[1][13] != "2024-08-01" {
		t.Errorf("first row = %v", rows[1])
	}
}
