package question_test

import (
	"context"
	"io"
	"log/slog"

	"github.com/quizforge/quizforge/internal/domain/errs"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*questiondomain.Question

	createErr error
	updateErr error
	findErr   error
	deleteErr error
	countErr  error
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uuid.UUID]*questiondomain.Question)}
}

func (r *fakeQuestionRepo) Create(_ context.Context, q *questiondomain.Question) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.questions[q.ID()] = q
	return nil
}

func (r *fakeQuestionRepo) Update(_ context.Context, q *questiondomain.Question) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.questions[q.ID()]; !ok {
		return errs.ErrNotFound
	}
	r.questions[q.ID()] = q
	return nil
}

func (r *fakeQuestionRepo) FindByID(_ context.Context, id uuid.UUID) (*questiondomain.Question, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	q, ok := r.questions[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return q, nil
}

func (r *fakeQuestionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.questions[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) CountByQuiz(_ context.Context, quizID uuid.UUID) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	n := 0
	for _, q := range r.questions {
		if q.QuizID() == quizID {
			n++
		}
	}
	return n, nil
}

type fakeQuizStore struct {
	quizzes   map[uuid.UUID]*quizdomain.Quiz
	findErr   error
	updateErr error
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{quizzes: make(map[uuid.UUID]*quizdomain.Quiz)}
}

func (s *fakeQuizStore) FindByID(_ context.Context, id uuid.UUID) (*quizdomain.Quiz, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	q, ok := s.quizzes[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return q, nil
}

func (s *fakeQuizStore) Update(_ context.Context, q *quizdomain.Quiz) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.quizzes[q.ID()] = q
	return nil
}

func mustQuiz(title string) *quizdomain.Quiz {
	q, err := quizdomain.NewQuiz(uuid.NewUUID(), title, "", uuid.UUID(""), nil)
	if err != nil {
		panic(err)
	}
	return q
}

func mustQuestion(quizID uuid.UUID, prompt string) *questiondomain.Question {
	q, err := questiondomain.NewQuestion(
		quizID, prompt, questiondomain.TypeTrueFalse,
		[]questiondomain.Choice{{Text: "True", Correct: true}, {Text: "False"}},
		nil, 1, 1,
	)
	if err != nil {
		panic(err)
	}
	return q
}
