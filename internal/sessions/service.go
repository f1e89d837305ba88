package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/utils"
)

var (
	ErrNotFound   = errors.New("session not found")
	ErrExists     = errors.New("session id already in use")
	ErrValidation = errors.New("invalid session data")
	ErrNoTest     = errors.New("session has no test")
)

type Store interface {
	InsertSession(ctx context.Context, sess *models.Session) error
	UpdateSession(ctx context.Context, sess *models.Session) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	ListSessions(ctx context.Context) ([]models.Session, error)
	// DeleteSessionCascade removes the session plus its attendance records,
	// test scores, test and questions in one transaction.
	DeleteSessionCascade(ctx context.Context, id string) error
	SetSessionCode(ctx context.Context, id, code string) error

	GetTestBySession(ctx context.Context, sessionID string) (*models.Test, error)
	ListQuestions(ctx context.Context, testID string) ([]models.Question, error)
	// ReplaceTest upserts the test row and swaps the full question set
	// (delete then bulk insert) in one transaction.
	ReplaceTest(ctx context.Context, test *models.Test, questions []models.Question) error
	// DeleteTestCascade removes the session's test, its questions and any
	// scores recorded against it.
	DeleteTestCascade(ctx context.Context, sessionID string) error
}

// Service is the admin-side authoring engine for sessions and their tests.
type Service struct {
	store   Store
	codeLen int
}

func NewService(store Store, codeLen int) *Service {
	if codeLen <= 0 {
		codeLen = 8
	}
	return &Service{store: store, codeLen: codeLen}
}

type SessionInput struct {
	ID          string
	Name        string
	Description string
	Date        string
	Time        string
	Venue       string
	Status      string
	Type        string
	Duration    string
	TestLink    string
	SessionCode string
}

// Create validates and stores a new session. When no code is supplied a
// fresh one is generated, so check-in gating works from day one.
func (s *Service) Create(ctx context.Context, in SessionInput) (*models.Session, error) {
	in.ID = strings.TrimSpace(in.ID)
	if in.ID == "" || strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: id and name are required", ErrValidation)
	}
	if in.Status == "" {
		in.Status = models.SessionUpcoming
	}
	if in.Type == "" {
		in.Type = models.SessionTypes[0]
	}
	if err := validateEnums(in.Status, in.Type); err != nil {
		return nil, err
	}
	code := strings.TrimSpace(in.SessionCode)
	if code == "" {
		var err error
		code, err = utils.GenerateCode(s.codeLen)
		if err != nil {
			return nil, err
		}
	}
	sess := &models.Session{
		ID:          in.ID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Date:        in.Date,
		Time:        in.Time,
		Venue:       in.Venue,
		Status:      in.Status,
		Type:        in.Type,
		Duration:    in.Duration,
		TestLink:    in.TestLink,
		SessionCode: code,
	}
	if err := s.store.InsertSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SessionUpdate carries partial changes; nil fields are left untouched.
// The stored session code is only changed through RegenerateCode.
type SessionUpdate struct {
	Name        *string
	Description *string
	Date        *string
	Time        *string
	Venue       *string
	Status      *string
	Type        *string
	Duration    *string
	TestLink    *string
}

func (s *Service) Update(ctx context.Context, id string, up SessionUpdate) (*models.Session, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&sess.Name, up.Name)
	apply(&sess.Description, up.Description)
	apply(&sess.Date, up.Date)
	apply(&sess.Time, up.Time)
	apply(&sess.Venue, up.Venue)
	apply(&sess.Duration, up.Duration)
	apply(&sess.TestLink, up.TestLink)
	if up.Status != nil {
		sess.Status = *up.Status
	}
	if up.Type != nil {
		sess.Type = *up.Type
	}
	if err := validateEnums(sess.Status, sess.Type); err != nil {
		return nil, err
	}
	if err := s.store.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Session, error) {
	return s.get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Session, error) {
	return s.store.ListSessions(ctx)
}

// Delete removes the session and everything recorded against it.
func (s *Service) Delete(ctx context.Context, id string) error {
	sess, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	return s.store.DeleteSessionCascade(ctx, sess.ID)
}

// RegenerateCode assigns a fresh check-in code and returns it.
func (s *Service) RegenerateCode(ctx context.Context, id string) (string, error) {
	sess, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}
	code, err := utils.GenerateCode(s.codeLen)
	if err != nil {
		return "", err
	}
	if err := s.store.SetSessionCode(ctx, sess.ID, code); err != nil {
		return "", err
	}
	return code, nil
}

type QuestionInput struct {
	Text          string
	Options       []string
	CorrectAnswer int
}

// ReplaceTest applies replace-all-on-edit semantics: the previous question
// set is dropped and the submitted one inserted, atomically at the store.
func (s *Service) ReplaceTest(ctx context.Context, sessionID, title string, qs []QuestionInput) (*models.Test, []models.Question, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, nil, fmt.Errorf("%w: test title is required", ErrValidation)
	}
	if len(qs) == 0 {
		return nil, nil, fmt.Errorf("%w: at least one question is required", ErrValidation)
	}
	for i, q := range qs {
		if strings.TrimSpace(q.Text) == "" {
			return nil, nil, fmt.Errorf("%w: question %d has no text", ErrValidation, i+1)
		}
		if len(q.Options) < 2 {
			return nil, nil, fmt.Errorf("%w: question %d needs at least two options", ErrValidation, i+1)
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return nil, nil, fmt.Errorf("%w: question %d correct answer out of range", ErrValidation, i+1)
		}
	}

	test, err := s.store.GetTestBySession(ctx, sess.ID)
	if err != nil {
		return nil, nil, err
	}
	if test == nil {
		test = &models.Test{ID: uuid.NewString(), SessionID: sess.ID}
	}
	test.Title = strings.TrimSpace(title)

	questions := make([]models.Question, len(qs))
	for i, q := range qs {
		questions[i] = models.Question{
			ID:            uuid.NewString(),
			TestID:        test.ID,
			Text:          strings.TrimSpace(q.Text),
			Options:       append([]string(nil), q.Options...),
			CorrectAnswer: q.CorrectAnswer,
			Position:      i,
		}
	}
	if err := s.store.ReplaceTest(ctx, test, questions); err != nil {
		return nil, nil, err
	}
	return test, questions, nil
}

func (s *Service) TestFor(ctx context.Context, sessionID string) (*models.Test, error) {
	sess, err := s.get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	test, err := s.store.GetTestBySession(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, ErrNoTest
	}
	return test, nil
}

// TestWithQuestions is the authoring read: full questions with answers,
// regardless of session status.
func (s *Service) TestWithQuestions(ctx context.Context, sessionID string) (*models.Test, []models.Question, error) {
	test, err := s.TestFor(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	questions, err := s.store.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, nil, err
	}
	return test, questions, nil
}

func (s *Service) DeleteTest(ctx context.Context, sessionID string) error {
	if _, err := s.TestFor(ctx, sessionID); err != nil {
		return err
	}
	return s.store.DeleteTestCascade(ctx, sessionID)
}

func (s *Service) get(ctx context.Context, id string) (*models.Session, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

func validateEnums(status, typ string) error {
	if !models.ValidSessionStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	if !models.ValidSessionType(typ) {
		return fmt.Errorf("%w: unknown type %q", ErrValidation, typ)
	}
	return nil
}
