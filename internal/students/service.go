package students

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ethicraft/club-portal/internal/models"
)

// Mentors is the fixed staff set; one is assigned at random on registration.
var Mentors = []string{"Kaushik", "Meghraj", "Shailesh", "Darshan"}

var Branches = []string{"CE", "ENTC", "IT", "ECE", "AIDS"}

var (
	ErrNotFound   = errors.New("student not found")
	ErrDuplicate  = errors.New("a student with this email or PRN already exists")
	ErrValidation = errors.New("invalid student data")
)

type Store interface {
	InsertStudent(ctx context.Context, st *models.Student) error
	UpdateStudent(ctx context.Context, st *models.Student) error
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	ListStudents(ctx context.Context) ([]models.Student, error)
	// DeleteStudentCascade removes the student and their attendance and
	// score rows.
	DeleteStudentCascade(ctx context.Context, id string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type RegisterInput struct {
	FirstName    string
	MiddleName   string
	LastName     string
	Email        string
	RollNumber   string
	PrnNumber    string
	DateOfBirth  string
	Branch       string
	Division     string
	Gender       string
	Address      string
	SgpaSem1     string
	SgpaSem2     string
	ProfilePhoto string
}

// Register creates a student record with a random mentor assignment.
// Email and PRN are normalized before storage so login comparisons stay
// trivial.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Student, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	st := &models.Student{
		ID:               uuid.NewString(),
		FirstName:        strings.TrimSpace(in.FirstName),
		MiddleName:       strings.TrimSpace(in.MiddleName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            normalize(in.Email),
		RollNumber:       strings.TrimSpace(in.RollNumber),
		PrnNumber:        normalize(in.PrnNumber),
		DateOfBirth:      strings.TrimSpace(in.DateOfBirth),
		Branch:           in.Branch,
		Division:         strings.TrimSpace(in.Division),
		Gender:           strings.TrimSpace(in.Gender),
		Address:          strings.TrimSpace(in.Address),
		SgpaSem1:         strings.TrimSpace(in.SgpaSem1),
		SgpaSem2:         strings.TrimSpace(in.SgpaSem2),
		ProfilePhoto:     in.ProfilePhoto,
		RegistrationDate: time.Now().UTC(),
		Mentor:           Mentors[rand.Intn(len(Mentors))],
	}
	if err := s.store.InsertStudent(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (in RegisterInput) validate() error {
	required := map[string]string{
		"first_name":    in.FirstName,
		"last_name":     in.LastName,
		"email":         in.Email,
		"roll_number":   in.RollNumber,
		"prn_number":    in.PrnNumber,
		"date_of_birth": in.DateOfBirth,
		"branch":        in.Branch,
		"division":      in.Division,
		"gender":        in.Gender,
	}
	for field, val := range required {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}
	if !validBranch(in.Branch) {
		return fmt.Errorf("%w: unknown branch %q", ErrValidation, in.Branch)
	}
	return nil
}

// ProfileUpdate carries partial changes; nil fields are left untouched.
type ProfileUpdate struct {
	FirstName    *string
	MiddleName   *string
	LastName     *string
	Email        *string
	RollNumber   *string
	DateOfBirth  *string
	Branch       *string
	Division     *string
	Gender       *string
	Address      *string
	SgpaSem1     *string
	SgpaSem2     *string
	ProfilePhoto *string
}

func (s *Service) UpdateProfile(ctx context.Context, id string, up ProfileUpdate) (*models.Student, error) {
	st, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&st.FirstName, up.FirstName)
	apply(&st.MiddleName, up.MiddleName)
	apply(&st.LastName, up.LastName)
	apply(&st.RollNumber, up.RollNumber)
	apply(&st.DateOfBirth, up.DateOfBirth)
	apply(&st.Division, up.Division)
	apply(&st.Gender, up.Gender)
	apply(&st.Address, up.Address)
	apply(&st.SgpaSem1, up.SgpaSem1)
	apply(&st.SgpaSem2, up.SgpaSem2)
	apply(&st.ProfilePhoto, up.ProfilePhoto)
	if up.Email != nil {
		st.Email = normalize(*up.Email)
	}
	if up.Branch != nil {
		if !validBranch(*up.Branch) {
			return nil, fmt.Errorf("%w: unknown branch %q", ErrValidation, *up.Branch)
		}
		st.Branch = *up.Branch
	}
	if err := s.store.UpdateStudent(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// SetPaid flips the membership payment flag (admin operation).
func (s *Service) SetPaid(ctx context.Context, id string, paid bool) (*models.Student, error) {
	st, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	st.IsPaid = paid
	if err := s.store.UpdateStudent(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Student, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Student, error) {
	return s.store.ListStudents(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	st, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.DeleteStudentCascade(ctx, st.ID)
}

func (s *Service) get(ctx context.Context, id string) (*models.Student, error) {
	st, err := s.store.GetStudent(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func validBranch(b string) bool {
	for _, v := range Branches {
		if v == b {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
