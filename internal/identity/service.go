package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/utils"
	"github.com/ethicraft/club-portal/internal/views"
)

type Kind string

const (
	KindNone    Kind = ""
	KindStudent Kind = "student"
	KindAdmin   Kind = "admin"
)

// Principal identifies who is acting in a request. The zero value is
// anonymous. At most one kind is ever active for a client session; the
// engine rejects logins that would mix kinds.
type Principal struct {
	Kind Kind
	ID   string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPrincipalActive    = errors.New("another principal kind is already active")
	ErrNotFound           = errors.New("student not found")
)

// StudentReader is the slice of storage the identity engine needs. Finders
// return (nil, nil) when no row matches.
type StudentReader interface {
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	FindStudentByLogin(ctx context.Context, email, prn string) (*models.Student, error)
}

type Service struct {
	students      StudentReader
	adminEmail    string
	adminPassHash string
}

// NewService hashes the configured admin password once so later comparisons
// go through bcrypt like any stored credential would.
func NewService(students StudentReader, adminEmail, adminPassword string) (*Service, error) {
	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return nil, err
	}
	return &Service{
		students:      students,
		adminEmail:    normalize(adminEmail),
		adminPassHash: hash,
	}, nil
}

// LoginStudent matches email and PRN number, both trimmed and
// case-insensitive, both required. Fails when an admin principal is active.
func (s *Service) LoginStudent(ctx context.Context, active Principal, email, prn string) (*models.Student, error) {
	if active.Kind == KindAdmin {
		return nil, ErrPrincipalActive
	}
	email = normalize(email)
	prn = normalize(prn)
	if email == "" || prn == "" {
		return nil, ErrInvalidCredentials
	}
	st, err := s.students.FindStudentByLogin(ctx, email, prn)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrInvalidCredentials
	}
	return st, nil
}

// LoginAdmin checks against the single configured administrator identity.
// Fails when a student principal is active.
func (s *Service) LoginAdmin(ctx context.Context, active Principal, email, password string) error {
	if active.Kind == KindStudent {
		return ErrPrincipalActive
	}
	if normalize(email) != s.adminEmail || !utils.CheckPassword(s.adminPassHash, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// Logout always succeeds and reports which cached views the caller must drop
// along with the principal.
func (s *Service) Logout(p Principal) []views.View {
	switch p.Kind {
	case KindStudent:
		return []views.View{views.Profile, views.Attendance, views.Scoreboard}
	case KindAdmin:
		return []views.View{views.Roster}
	default:
		return nil
	}
}

// Refresh re-reads the authoritative student record to pick up side effects
// of other operations without re-login.
func (s *Service) Refresh(ctx context.Context, studentID string) (*models.Student, error) {
	st, err := s.students.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
