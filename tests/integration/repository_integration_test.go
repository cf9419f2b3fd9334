//go:build integration

package integration

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quizapp "github.com/quizforge/quizforge/internal/application/quiz"
	"github.com/quizforge/quizforge/internal/application/security"
	"github.com/quizforge/quizforge/internal/domain/errs"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
	"github.com/quizforge/quizforge/internal/infrastructure/repository/mongodb"
	"github.com/quizforge/quizforge/internal/infrastructure/session"
	"github.com/quizforge/quizforge/tests/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestQuizRepository_RoundTrip(t *testing.T) {
	db := testutil.SetupTestMongoDB(t)
	repo := mongodb.NewQuizRepository(db.Collection(mongodb.QuizCollection), discardLogger())
	ctx := t.Context()

	ownerID := uuid.NewUUID()
	quiz, err := quizdomain.NewQuiz(ownerID, "Go Basics", "intro quiz", uuid.UUID(""), []string{"go"})
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, quiz))

	loaded, err := repo.FindByID(ctx, quiz.ID())
	require.NoError(t, err)
	assert.Equal(t, quiz.ID(), loaded.ID())
	assert.Equal(t, "Go Basics", loaded.Title())
	assert.Equal(t, ownerID, loaded.OwnerID())
	assert.Equal(t, quizdomain.StatusDraft, loaded.Status())

	require.NoError(t, loaded.Update("Go Fundamentals", "updated", uuid.UUID(""), nil))
	require.NoError(t, repo.Update(ctx, loaded))

	reloaded, err := repo.FindByID(ctx, quiz.ID())
	require.NoError(t, err)
	assert.Equal(t, "Go Fundamentals", reloaded.Title())

	require.NoError(t, repo.Delete(ctx, quiz.ID()))
	_, err = repo.FindByID(ctx, quiz.ID())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestQuizRepository_ListFiltersByOwner(t *testing.T) {
	db := testutil.SetupTestMongoDB(t)
	repo := mongodb.NewQuizRepository(db.Collection(mongodb.QuizCollection), discardLogger())
	ctx := t.Context()

	alice := uuid.NewUUID()
	bob := uuid.NewUUID()

	for _, owner := range []uuid.UUID{alice, alice, bob} {
		quiz, err := quizdomain.NewQuiz(owner, "Quiz "+uuid.NewUUID().String()[:8], "", uuid.UUID(""), nil)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, quiz))
	}

	quizzes, total, err := repo.List(ctx, quizapp.Filter{OwnerID: alice, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, q := range quizzes {
		assert.Equal(t, alice, q.OwnerID())
	}
}

func TestRedisStore_FirstObservationWins(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := session.NewRedisStore(session.RedisStoreConfig{Client: client, TTL: time.Minute})
	ctx := t.Context()

	userID := uuid.NewUUID()
	baseline := security.Fingerprint{
		UserID:       userID,
		CreatedAt:    time.Now().UTC(),
		LastAccessAt: time.Now().UTC(),
		IP:           "10.0.0.1",
		UserAgent:    "agent-a",
	}

	stored, loaded, err := store.LoadOrStore(ctx, "sess-1", baseline)
	require.NoError(t, err)
	assert.False(t, loaded, "first call stores the baseline")
	assert.Equal(t, userID, stored.UserID)

	// A second observation with different details must not replace the
	// baseline.
	intruder := baseline
	intruder.IP = "192.0.2.7"
	stored, loaded, err = store.LoadOrStore(ctx, "sess-1", intruder)
	require.NoError(t, err)
	assert.True(t, loaded)
	assert.Equal(t, "10.0.0.1", stored.IP)
}

func TestRedisStore_TouchUnknownSession(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := session.NewRedisStore(session.RedisStoreConfig{Client: client, TTL: time.Minute})

	err := store.Touch(t.Context(), "missing", time.Now())
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
