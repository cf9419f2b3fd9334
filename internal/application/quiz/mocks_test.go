package quiz_test

import (
	"context"
	"io"
	"log/slog"
	"strings"

	appquiz "github.com/quizforge/quizforge/internal/application/quiz"
	"github.com/quizforge/quizforge/internal/domain/errs"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeQuizRepo is an in-memory quiz repository with per-method error
// overrides.
type fakeQuizRepo struct {
	quizzes map[uuid.UUID]*quizdomain.Quiz

	createErr error
	updateErr error
	findErr   error
	deleteErr error
	listErr   error
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[uuid.UUID]*quizdomain.Quiz)}
}

func (r *fakeQuizRepo) Create(_ context.Context, q *quizdomain.Quiz) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.quizzes[q.ID()]; ok {
		return errs.ErrAlreadyExists
	}
	r.quizzes[q.ID()] = q
	return nil
}

func (r *fakeQuizRepo) Update(_ context.Context, q *quizdomain.Quiz) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.quizzes[q.ID()]; !ok {
		return errs.ErrNotFound
	}
	r.quizzes[q.ID()] = q
	return nil
}

func (r *fakeQuizRepo) FindByID(_ context.Context, id uuid.UUID) (*quizdomain.Quiz, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	q, ok := r.quizzes[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return q, nil
}

func (r *fakeQuizRepo) Delete(_ context.Context, id uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.quizzes[id]; !ok {
		return errs.ErrNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *fakeQuizRepo) List(_ context.Context, f appquiz.Filter) ([]*quizdomain.Quiz, int64, error) {
	if r.listErr != nil {
		return nil, 0, r.listErr
	}
	var matched []*quizdomain.Quiz
	for _, q := range r.quizzes {
		if !f.OwnerID.IsZero() && q.OwnerID() != f.OwnerID {
			continue
		}
		if f.Status != "" && q.Status() != f.Status {
			continue
		}
		if !f.CategoryID.IsZero() && q.CategoryID() != f.CategoryID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(q.Title()), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, q)
	}
	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

// fakeQuestionReader tracks question lists per quiz.
type fakeQuestionReader struct {
	byQuiz    map[uuid.UUID][]*questiondomain.Question
	listErr   error
	deleteErr error
	deleted   []uuid.UUID
}

func newFakeQuestionReader() *fakeQuestionReader {
	return &fakeQuestionReader{byQuiz: make(map[uuid.UUID][]*questiondomain.Question)}
}

func (r *fakeQuestionReader) ListByQuiz(_ context.Context, quizID uuid.UUID) ([]*questiondomain.Question, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.byQuiz[quizID], nil
}

func (r *fakeQuestionReader) DeleteByQuiz(_ context.Context, quizID uuid.UUID) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.deleted = append(r.deleted, quizID)
	delete(r.byQuiz, quizID)
	return nil
}

func mustQuiz(ownerID uuid.UUID, title string) *quizdomain.Quiz {
	q, err := quizdomain.NewQuiz(ownerID, title, "", uuid.UUID(""), nil)
	if err != nil {
		panic(err)
	}
	return q
}
