package sessions

import (
	"context"
	"errors"
	"testing"

	"github.com/ethicraft/club-portal/internal/models"
)

type fakeStore struct {
	sessions  map[string]*models.Session
	tests     map[string]*models.Test      // keyed by session id
	questions map[string][]models.Question // keyed by test id

	replaceCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:  map[string]*models.Session{},
		tests:     map[string]*models.Test{},
		questions: map[string][]models.Question{},
	}
}

func (f *fakeStore) InsertSession(_ context.Context, sess *models.Session) error {
	if _, ok := f.sessions[sess.ID]; ok {
		return ErrExists
	}
	cp := *sess
	f.sessions[sess.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateSession(_ context.Context, sess *models.Session) error {
	cp := *sess
	f.sessions[sess.ID] = &cp
	return nil
}

func (f *fakeStore) GetSession(_ context.Context, id string) (*models.Session, error) {
	sess, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *sess
	return &cp, nil
}

func (f *fakeStore) ListSessions(_ context.Context) ([]models.Session, error) {
	var out []models.Session
	for _, sess := range f.sessions {
		out = append(out, *sess)
	}
	return out, nil
}

func (f *fakeStore) DeleteSessionCascade(_ context.Context, id string) error {
	if test, ok := f.tests[id]; ok {
		delete(f.questions, test.ID)
		delete(f.tests, id)
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeStore) SetSessionCode(_ context.Context, id, code string) error {
	f.sessions[id].SessionCode = code
	return nil
}

func (f *fakeStore) GetTestBySession(_ context.Context, sessionID string) (*models.Test, error) {
	test, ok := f.tests[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *test
	return &cp, nil
}

func (f *fakeStore) ListQuestions(_ context.Context, testID string) ([]models.Question, error) {
	return append([]models.Question(nil), f.questions[testID]...), nil
}

func (f *fakeStore) ReplaceTest(_ context.Context, test *models.Test, questions []models.Question) error {
	f.replaceCalls++
	cp := *test
	f.tests[test.SessionID] = &cp
	f.questions[test.ID] = append([]models.Question(nil), questions...)
	return nil
}

func (f *fakeStore) DeleteTestCascade(_ context.Context, sessionID string) error {
	if test, ok := f.tests[sessionID]; ok {
		delete(f.questions, test.ID)
		delete(f.tests, sessionID)
	}
	return nil
}

func TestCreateGeneratesCode(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)

	sess, err := svc.Create(context.Background(), SessionInput{ID: "DYS1", Name: "Discover Your Strengths"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sess.SessionCode) != 8 {
		t.Errorf("code %q, want 8 chars", sess.SessionCode)
	}
	if sess.Status != models.SessionUpcoming {
		t.Errorf("status = %q, want default upcoming", sess.Status)
	}
}

func TestCreateKeepsSuppliedCode(t *testing.T) {
	svc := NewService(newFakeStore(), 8)

	sess, err := svc.Create(context.Background(), SessionInput{ID: "DYS1", Name: "n", SessionCode: " SELF2024 "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if sess.SessionCode != "SELF2024" {
		t.Errorf("code = %q", sess.SessionCode)
	}
}

func TestCreateRejectsBadEnums(t *testing.T) {
	svc := NewService(newFakeStore(), 8)
	ctx := context.Background()

	if _, err := svc.Create(ctx, SessionInput{ID: "S1", Name: "n", Status: "running"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad status: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, SessionInput{ID: "S1", Name: "n", Type: "Lecture"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad type: err = %v, want ErrValidation", err)
	}
	if _, err := svc.Create(ctx, SessionInput{Name: "n"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing id: err = %v, want ErrValidation", err)
	}
}

func TestCreateDuplicateID(t *testing.T) {
	svc := NewService(newFakeStore(), 8)
	ctx := context.Background()

	if _, err := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n"}); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "other"}); !errors.Is(err, ErrExists) {
		t.Fatalf("err = %v, want ErrExists", err)
	}
}

func TestUpdatePartialKeepsCode(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n", SessionCode: "SELF2024"})

	status := models.SessionActive
	updated, err := svc.Update(ctx, sess.ID, SessionUpdate{Status: &status})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != models.SessionActive {
		t.Errorf("status = %q", updated.Status)
	}
	if updated.Name != "n" {
		t.Error("untouched field changed")
	}
	if updated.SessionCode != "SELF2024" {
		t.Errorf("code = %q, update must not touch the code", updated.SessionCode)
	}
}

func TestRegenerateCode(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n", SessionCode: "SELF2024"})
	code, err := svc.RegenerateCode(ctx, sess.ID)
	if err != nil {
		t.Fatalf("RegenerateCode: %v", err)
	}
	if code == "SELF2024" || len(code) != 8 {
		t.Errorf("code = %q", code)
	}
	stored, _ := store.GetSession(ctx, sess.ID)
	if stored.SessionCode != code {
		t.Error("code not persisted")
	}
}

func questionInputs() []QuestionInput {
	return []QuestionInput{
		{Text: "Q1", Options: []string{"a", "b"}, CorrectAnswer: 1},
		{Text: "Q2", Options: []string{"a", "b", "c"}, CorrectAnswer: 0},
	}
}

func TestReplaceTest(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n"})

	test, qs, err := svc.ReplaceTest(ctx, sess.ID, "Strengths quiz", questionInputs())
	if err != nil {
		t.Fatalf("ReplaceTest: %v", err)
	}
	if len(qs) != 2 || qs[0].Position != 0 || qs[1].Position != 1 {
		t.Errorf("questions = %+v", qs)
	}

	// A second edit must reuse the test id so existing scores stay linked.
	again, qs, err := svc.ReplaceTest(ctx, sess.ID, "Strengths quiz v2", questionInputs()[:1])
	if err != nil {
		t.Fatalf("second ReplaceTest: %v", err)
	}
	if again.ID != test.ID {
		t.Errorf("test id changed on edit: %q -> %q", test.ID, again.ID)
	}
	if len(qs) != 1 {
		t.Errorf("question set not replaced, got %d", len(qs))
	}
	if store.replaceCalls != 2 {
		t.Errorf("replaceCalls = %d, want the swap done in one store call per edit", store.replaceCalls)
	}
}

func TestReplaceTestValidation(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n"})

	cases := []struct {
		name  string
		title string
		qs    []QuestionInput
	}{
		{"empty title", "  ", questionInputs()},
		{"no questions", "t", nil},
		{"blank question", "t", []QuestionInput{{Text: " ", Options: []string{"a", "b"}}}},
		{"one option", "t", []QuestionInput{{Text: "q", Options: []string{"a"}}}},
		{"correct out of range", "t", []QuestionInput{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: 2}}},
		{"correct negative", "t", []QuestionInput{{Text: "q", Options: []string{"a", "b"}, CorrectAnswer: -1}}},
	}
	for _, tc := range cases {
		if _, _, err := svc.ReplaceTest(ctx, sess.ID, tc.title, tc.qs); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tc.name, err)
		}
	}
	if store.replaceCalls != 0 {
		t.Errorf("store touched on invalid input, replaceCalls = %d", store.replaceCalls)
	}
}

func TestTestWithQuestions(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n"})
	if _, _, err := svc.TestWithQuestions(ctx, sess.ID); !errors.Is(err, ErrNoTest) {
		t.Fatalf("err = %v, want ErrNoTest", err)
	}

	if _, _, err := svc.ReplaceTest(ctx, sess.ID, "t", questionInputs()); err != nil {
		t.Fatalf("ReplaceTest: %v", err)
	}
	test, qs, err := svc.TestWithQuestions(ctx, sess.ID)
	if err != nil {
		t.Fatalf("TestWithQuestions: %v", err)
	}
	if test.Title != "t" || len(qs) != 2 {
		t.Errorf("test = %+v, questions = %d", test, len(qs))
	}
}

func TestDeleteTest(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store, 8)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, SessionInput{ID: "DYS1", Name: "n"})
	if _, _, err := svc.ReplaceTest(ctx, sess.ID, "t", questionInputs()); err != nil {
		t.Fatalf("ReplaceTest: %v", err)
	}
	if err := svc.DeleteTest(ctx, sess.ID); err != nil {
		t.Fatalf("DeleteTest: %v", err)
	}
	if err := svc.DeleteTest(ctx, sess.ID); !errors.Is(err, ErrNoTest) {
		t.Errorf("second delete: err = %v, want ErrNoTest", err)
	}
}

func TestDeleteSessionMissing(t *testing.T) {
	svc := NewService(newFakeStore(), 8)
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
