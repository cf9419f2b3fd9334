package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quizforge/quizforge/internal/domain/errs"
	questiondomain "github.com/quizforge/quizforge/internal/domain/question"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// QuestionRepository implements both the question persistence port and the
// quiz package's QuestionReader on a MongoDB collection.
type QuestionRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewQuestionRepository creates a QuestionRepository.
func NewQuestionRepository(collection *mongo.Collection, logger *slog.Logger) *QuestionRepository {
	return &QuestionRepository{collection: collection, logger: logger}
}

// Create implements question.Repository.
func (r *QuestionRepository) Create(ctx context.Context, q *questiondomain.Question) error {
	if q == nil || q.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	_, err := r.collection.InsertOne(ctx, questionToDocument(q))
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to insert question",
			slog.String("question_id", q.ID().String()),
			slog.String("quiz_id", q.QuizID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "question")
}

// Update implements question.Repository.
func (r *QuestionRepository) Update(ctx context.Context, q *questiondomain.Question) error {
	if q == nil || q.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"question_id": q.ID().String()}
	result, err := r.collection.ReplaceOne(ctx, filter, questionToDocument(q))
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update question",
			slog.String("question_id", q.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "question")
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// FindByID implements question.Repository.
func (r *QuestionRepository) FindByID(ctx context.Context, id uuid.UUID) (*questiondomain.Question, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	var doc questionDocument
	err := r.collection.FindOne(ctx, bson.M{"question_id": id.String()}).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "question")
	}
	return documentToQuestion(&doc)
}

// Delete implements question.Repository.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id.IsZero() {
		return errs.ErrInvalidInput
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"question_id": id.String()})
	if err != nil {
		return HandleMongoError(err, "question")
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// CountByQuiz implements question.Repository.
func (r *QuestionRepository) CountByQuiz(ctx context.Context, quizID uuid.UUID) (int, error) {
	if quizID.IsZero() {
		return 0, errs.ErrInvalidInput
	}

	count, err := r.collection.CountDocuments(ctx, bson.M{"quiz_id": quizID.String()})
	if err != nil {
		return 0, HandleMongoError(err, "questions")
	}
	return int(count), nil
}

// ListByQuiz implements quiz.QuestionReader. Questions come back ordered by
// position.
func (r *QuestionRepository) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]*questiondomain.Question, error) {
	if quizID.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"quiz_id": quizID.String()}, opts)
	if err != nil {
		return nil, HandleMongoError(err, "questions")
	}
	return decodeAll(ctx, cursor, documentToQuestion)
}

// DeleteByQuiz implements quiz.QuestionReader.
func (r *QuestionRepository) DeleteByQuiz(ctx context.Context, quizID uuid.UUID) error {
	if quizID.IsZero() {
		return errs.ErrInvalidInput
	}

	_, err := r.collection.DeleteMany(ctx, bson.M{"quiz_id": quizID.String()})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete quiz questions",
			slog.String("quiz_id", quizID.String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "questions")
}

// questionDocument is the MongoDB shape of a question.
type questionDocument struct {
	QuestionID      string           `bson:"question_id"`
	QuizID          string           `bson:"quiz_id"`
	Prompt          string           `bson:"prompt"`
	Type            string           `bson:"type"`
	Choices         []choiceDocument `bson:"choices,omitempty"`
	AcceptedAnswers []string         `bson:"accepted_answers,omitempty"`
	Points          int              `bson:"points"`
	Position        int              `bson:"position"`
	CreatedAt       time.Time        `bson:"created_at"`
	UpdatedAt       time.Time        `bson:"updated_at"`
}

type choiceDocument struct {
	Text    string `bson:"text"`
	Correct bool   `bson:"correct"`
}

func questionToDocument(q *questiondomain.Question) questionDocument {
	choices := make([]choiceDocument, 0, len(q.Choices()))
	for _, c := range q.Choices() {
		choices = append(choices, choiceDocument{Text: c.Text, Correct: c.Correct})
	}

	return questionDocument{
		QuestionID:      q.ID().String(),
		QuizID:          q.QuizID().String(),
		Prompt:          q.Prompt(),
		Type:            string(q.Type()),
		Choices:         choices,
		AcceptedAnswers: q.AcceptedAnswers(),
		Points:          q.Points(),
		Position:        q.Position(),
		CreatedAt:       q.CreatedAt(),
		UpdatedAt:       q.UpdatedAt(),
	}
}

func documentToQuestion(doc *questionDocument) (*questiondomain.Question, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.QuestionID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	quizID, err := uuid.ParseUUID(doc.QuizID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	choices := make([]questiondomain.Choice, 0, len(doc.Choices))
	for _, c := range doc.Choices {
		choices = append(choices, questiondomain.Choice{Text: c.Text, Correct: c.Correct})
	}

	return questiondomain.Reconstruct(
		id,
		quizID,
		doc.Prompt,
		questiondomain.Type(doc.Type),
		choices,
		doc.AcceptedAnswers,
		doc.Points,
		doc.Position,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
