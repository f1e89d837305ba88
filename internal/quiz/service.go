package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/views"
)

var (
	// ErrUnavailable covers every reason a quiz form must not be rendered:
	// missing test, missing session, session/test mismatch, session not
	// active, empty question set. Callers get no further detail.
	ErrUnavailable = errors.New("test is not available")

	ErrAnswerCount = errors.New("answer count does not match question count")
	ErrAnswerRange = errors.New("answer is not a valid option index")
)

type TestStore interface {
	GetTest(ctx context.Context, id string) (*models.Test, error)
	ListQuestions(ctx context.Context, testID string) ([]models.Question, error)
}

type SessionGetter interface {
	GetSession(ctx context.Context, id string) (*models.Session, error)
}

type ScoreStore interface {
	UpsertScore(ctx context.Context, score *models.TestScore) error
	ListScoresByStudent(ctx context.Context, studentID string) ([]models.TestScore, error)
}

type Service struct {
	tests    TestStore
	sessions SessionGetter
	scores   ScoreStore
}

func NewService(tests TestStore, sessions SessionGetter, scores ScoreStore) *Service {
	return &Service{tests: tests, sessions: sessions, scores: scores}
}

// LoadedTest is a test with its questions in position order.
type LoadedTest struct {
	Test      models.Test
	Questions []models.Question
}

// LoadTest returns the test only while its session is active. Any other
// state is ErrUnavailable.
func (s *Service) LoadTest(ctx context.Context, testID, sessionID string) (*LoadedTest, error) {
	test, err := s.tests.GetTest(ctx, testID)
	if err != nil {
		return nil, err
	}
	if test == nil || test.SessionID != sessionID {
		return nil, ErrUnavailable
	}
	sess, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.Status != models.SessionActive {
		return nil, ErrUnavailable
	}
	questions, err := s.tests.ListQuestions(ctx, test.ID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrUnavailable
	}
	return &LoadedTest{Test: *test, Questions: questions}, nil
}

// Submission is the outcome of a graded, persisted answer set.
type Submission struct {
	Score    models.TestScore
	Correct  int
	Total    int
	Affected []views.View
}

// SubmitAnswers grades a complete answer set and upserts the result keyed by
// (student, session, test). Resubmission overwrites: last write wins.
func (s *Service) SubmitAnswers(ctx context.Context, studentID, testID, sessionID string, answers []int) (*Submission, error) {
	loaded, err := s.LoadTest(ctx, testID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(answers) != len(loaded.Questions) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrAnswerCount, len(answers), len(loaded.Questions))
	}
	correct := 0
	for i, q := range loaded.Questions {
		if answers[i] < 0 || answers[i] >= len(q.Options) {
			return nil, fmt.Errorf("%w: question %d", ErrAnswerRange, i+1)
		}
		if answers[i] == q.CorrectAnswer {
			correct++
		}
	}

	score := models.TestScore{
		StudentID: studentID,
		SessionID: sessionID,
		TestID:    testID,
		Score:     Percentage(correct, len(loaded.Questions)),
		Answers:   append([]int(nil), answers...),
	}
	if err := s.scores.UpsertScore(ctx, &score); err != nil {
		return nil, err
	}
	return &Submission{
		Score:    score,
		Correct:  correct,
		Total:    len(loaded.Questions),
		Affected: []views.View{views.Scoreboard},
	}, nil
}

// ScoresForStudent returns a session-id keyed score map for dashboards.
func (s *Service) ScoresForStudent(ctx context.Context, studentID string) (map[string]int, error) {
	recs, err := s.scores.ListScoresByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(recs))
	for _, r := range recs {
		out[r.SessionID] = r.Score
	}
	return out, nil
}

// Percentage is the single score unit used everywhere: correct answers over
// total questions, as a rounded 0-100 integer.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
