package question

import (
	"context"
	"log/slog"

	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// syncCount refreshes a quiz's denormalized question count after a question
// write. A failure leaves a stale count that the next successful sync
// repairs, so errors are logged and swallowed: the question write itself
// already committed.
func syncCount(ctx context.Context, questions Repository, quizzes QuizStore, logger *slog.Logger, quizID uuid.UUID) {
	n, err := questions.CountByQuiz(ctx, quizID)
	if err != nil {
		logger.WarnContext(ctx, "question count sync failed",
			slog.String("quiz_id", quizID.String()), slog.Any("error", err))
		return
	}

	parent, err := quizzes.FindByID(ctx, quizID)
	if err != nil {
		logger.WarnContext(ctx, "question count sync failed",
			slog.String("quiz_id", quizID.String()), slog.Any("error", err))
		return
	}

	parent.SetQuestionCount(n)
	if err := quizzes.Update(ctx, parent); err != nil {
		logger.WarnContext(ctx, "question count sync failed",
			slog.String("quiz_id", quizID.String()), slog.Any("error", err))
	}
}
