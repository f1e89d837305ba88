package quiz

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/ethicraft/club-portal/internal/models"
	"github.com/ethicraft/club-portal/internal/views"
)

type fakeStore struct {
	tests     map[string]*models.Test
	questions map[string][]models.Question
	sessions  map[string]*models.Session
	scores    map[string]models.TestScore
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tests:     map[string]*models.Test{},
		questions: map[string][]models.Question{},
		sessions:  map[string]*models.Session{},
		scores:    map[string]models.TestScore{},
	}
}

func (f *fakeStore) GetTest(_ context.Context, id string) (*models.Test, error) {
	return f.tests[id], nil
}

func (f *fakeStore) ListQuestions(_ context.Context, testID string) ([]models.Question, error) {
	return f.questions[testID], nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	return f.sessions[id], nil
}

func (f *fakeStore) UpsertScore(_ context.Context, score *models.TestScore) error {
	f.scores[score.StudentID+"|"+score.SessionID+"|"+score.TestID] = *score
	return nil
}

func (f *fakeStore) ListScoresByStudent(_ context.Context, studentID string) ([]models.TestScore, error) {
	var out []models.TestScore
	for _, s := range f.scores {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func option(i int) []string { return []string{"a", "b", "c", "d"}[:i] }

func seedActiveTest(store *fakeStore) {
	store.sessions["DYS1"] = &models.Session{ID: "DYS1", Status: models.SessionActive}
	store.tests["t1"] = &models.Test{ID: "t1", SessionID: "DYS1", Title: "Ethics Quiz"}
	store.questions["t1"] = []models.Question{
		{ID: "q1", TestID: "t1", Text: "one", Options: option(4), CorrectAnswer: 1, Position: 0},
		{ID: "q2", TestID: "t1", Text: "two", Options: option(4), CorrectAnswer: 0, Position: 1},
	}
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, store)
}

func TestLoadTestActiveSession(t *testing.T) {
	store := newFakeStore()
	seedActiveTest(store)
	svc := newTestService(store)

	loaded, err := svc.LoadTest(context.Background(), "t1", "DYS1")
	if err != nil {
		t.Fatalf("LoadTest: %v", err)
	}
	if loaded.Test.ID != "t1" || len(loaded.Questions) != 2 {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadTestUnavailable(t *testing.T) {
	cases := []struct {
		name              string
		setup             func(*fakeStore)
		testID, sessionID string
	}{
		{"missing test", func(f *fakeStore) {}, "nope", "DYS1"},
		{"session mismatch", func(f *fakeStore) {}, "t1", "DYS9"},
		{"missing session", func(f *fakeStore) { delete(f.sessions, "DYS1") }, "t1", "DYS1"},
		{"upcoming session", func(f *fakeStore) { f.sessions["DYS1"].Status = models.SessionUpcoming }, "t1", "DYS1"},
		{"completed session", func(f *fakeStore) { f.sessions["DYS1"].Status = models.SessionCompleted }, "t1", "DYS1"},
		{"no questions", func(f *fakeStore) { f.questions["t1"] = nil }, "t1", "DYS1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore()
			seedActiveTest(store)
			tc.setup(store)
			_, err := newTestService(store).LoadTest(context.Background(), tc.testID, tc.sessionID)
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err = %v, want ErrUnavailable", err)
			}
		})
	}
}

func TestSubmitAnswersValidation(t *testing.T) {
	store := newFakeStore()
	seedActiveTest(store)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{1}); !errors.Is(err, ErrAnswerCount) {
		t.Errorf("short answers: err = %v, want ErrAnswerCount", err)
	}
	if _, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{1, 0, 2}); !errors.Is(err, ErrAnswerCount) {
		t.Errorf("long answers: err = %v, want ErrAnswerCount", err)
	}
	if _, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{-1, 0}); !errors.Is(err, ErrAnswerRange) {
		t.Errorf("unanswered entry: err = %v, want ErrAnswerRange", err)
	}
	if _, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{1, 4}); !errors.Is(err, ErrAnswerRange) {
		t.Errorf("out of range entry: err = %v, want ErrAnswerRange", err)
	}
	if len(store.scores) != 0 {
		t.Error("no score should be persisted on rejection")
	}
}

func TestSubmitAnswersScoring(t *testing.T) {
	store := newFakeStore()
	seedActiveTest(store)
	svc := newTestService(store)
	ctx := context.Background()

	sub, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{1, 0})
	if err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}
	if sub.Score.Score != 100 || sub.Correct != 2 || sub.Total != 2 {
		t.Errorf("got score=%d correct=%d total=%d, want 100/2/2", sub.Score.Score, sub.Correct, sub.Total)
	}
	if len(sub.Affected) != 1 || sub.Affected[0] != views.Scoreboard {
		t.Errorf("affected views = %v", sub.Affected)
	}

	sub, err = svc.SubmitAnswers(ctx, "s2", "t1", "DYS1", []int{0, 0})
	if err != nil {
		t.Fatalf("SubmitAnswers: %v", err)
	}
	if sub.Score.Score != 50 || sub.Correct != 1 {
		t.Errorf("got score=%d correct=%d, want 50/1", sub.Score.Score, sub.Correct)
	}
}

func TestSubmitAnswersResubmissionOverwrites(t *testing.T) {
	store := newFakeStore()
	seedActiveTest(store)
	svc := newTestService(store)
	ctx := context.Background()

	if _, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{1, 0}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := svc.SubmitAnswers(ctx, "s1", "t1", "DYS1", []int{0, 1}); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if len(store.scores) != 1 {
		t.Fatalf("stored scores = %d, want 1", len(store.scores))
	}
	stored := store.scores["s1|DYS1|t1"]
	if stored.Score != 0 {
		t.Errorf("stored score = %d, want 0", stored.Score)
	}
	if !reflect.DeepEqual(stored.Answers, []int{0, 1}) {
		t.Errorf("stored answers = %v, want latest [0 1]", stored.Answers)
	}
}

func TestPercentageRounding(t *testing.T) {
	cases := []struct {
		correct, total, want int
	}{
		{0, 0, 0},
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{3, 3, 100},
		{1, 2, 50},
		{1, 8, 13},
	}
	for _, tc := range cases {
		if got := Percentage(tc.correct, tc.total); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tc.correct, tc.total, got, tc.want)
		}
	}
}

func TestScoresForStudent(t *testing.T) {
	store := newFakeStore()
	store.scores["s1|DYS1|t1"] = models.TestScore{StudentID: "s1", SessionID: "DYS1", TestID: "t1", Score: 75}
	store.scores["s1|DYS2|t2"] = models.TestScore{StudentID: "s1", SessionID: "DYS2", TestID: "t2", Score: 40}
	store.scores["s2|DYS1|t1"] = models.TestScore{StudentID: "s2", SessionID: "DYS1", TestID: "t1", Score: 90}
	svc := newTestService(store)

	scores, err := svc.ScoresForStudent(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ScoresForStudent: %v", err)
	}
	want := map[string]int{"DYS1": 75, "DYS2": 40}
	if !reflect.DeepEqual(scores, want) {
		t.Errorf("scores = %v, want %v", scores, want)
	}
}
