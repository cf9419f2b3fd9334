package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	appquiz "github.com/quizforge/quizforge/internal/application/quiz"
	"github.com/quizforge/quizforge/internal/domain/errs"
	quizdomain "github.com/quizforge/quizforge/internal/domain/quiz"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// QuizRepository implements appquiz.Repository on a MongoDB collection.
type QuizRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewQuizRepository creates a QuizRepository.
func NewQuizRepository(collection *mongo.Collection, logger *slog.Logger) *QuizRepository {
	return &QuizRepository{collection: collection, logger: logger}
}

// Create implements appquiz.Repository.
func (r *QuizRepository) Create(ctx context.Context, q *quizdomain.Quiz) error {
	if q == nil || q.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	_, err := r.collection.InsertOne(ctx, quizToDocument(q))
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to insert quiz",
			slog.String("quiz_id", q.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "quiz")
}

// Update implements appquiz.Repository.
func (r *QuizRepository) Update(ctx context.Context, q *quizdomain.Quiz) error {
	if q == nil || q.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"quiz_id": q.ID().String()}
	result, err := r.collection.ReplaceOne(ctx, filter, quizToDocument(q))
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to update quiz",
			slog.String("quiz_id", q.ID().String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "quiz")
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// FindByID implements appquiz.Repository.
func (r *QuizRepository) FindByID(ctx context.Context, id uuid.UUID) (*quizdomain.Quiz, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	var doc quizDocument
	err := r.collection.FindOne(ctx, bson.M{"quiz_id": id.String()}).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "quiz")
	}
	return documentToQuiz(&doc)
}

// Delete implements appquiz.Repository.
func (r *QuizRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if id.IsZero() {
		return errs.ErrInvalidInput
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"quiz_id": id.String()})
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to delete quiz",
			slog.String("quiz_id", id.String()),
			slog.String("error", err.Error()),
		)
		return HandleMongoError(err, "quiz")
	}
	if result.DeletedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// List implements appquiz.Repository. Results are sorted by creation time,
// newest first.
func (r *QuizRepository) List(ctx context.Context, f appquiz.Filter) ([]*quizdomain.Quiz, int64, error) {
	filter := quizFilter(f)

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, HandleMongoError(err, "quizzes")
	}

	cursor, err := r.collection.Find(ctx, filter, FindWithPagination(f.Offset, f.Limit, "created_at", -1))
	if err != nil {
		return nil, 0, HandleMongoError(err, "quizzes")
	}

	quizzes, err := decodeAll(ctx, cursor, documentToQuiz)
	if err != nil {
		return nil, 0, err
	}
	return quizzes, total, nil
}

func quizFilter(f appquiz.Filter) bson.M {
	filter := bson.M{}
	if !f.OwnerID.IsZero() {
		filter["owner_id"] = f.OwnerID.String()
	}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if !f.CategoryID.IsZero() {
		filter["category_id"] = f.CategoryID.String()
	}
	if f.Search != "" {
		filter["title"] = bson.M{"$regex": f.Search, "$options": "i"}
	}
	return filter
}

// quizDocument is the MongoDB shape of a quiz.
type quizDocument struct {
	QuizID        string    `bson:"quiz_id"`
	OwnerID       string    `bson:"owner_id"`
	Title         string    `bson:"title"`
	Description   string    `bson:"description,omitempty"`
	CategoryID    string    `bson:"category_id,omitempty"`
	Tags          []string  `bson:"tags,omitempty"`
	Status        string    `bson:"status"`
	QuestionCount int       `bson:"question_count"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func quizToDocument(q *quizdomain.Quiz) quizDocument {
	return quizDocument{
		QuizID:        q.ID().String(),
		OwnerID:       q.OwnerID().String(),
		Title:         q.Title(),
		Description:   q.Description(),
		CategoryID:    q.CategoryID().String(),
		Tags:          q.Tags(),
		Status:        string(q.Status()),
		QuestionCount: q.QuestionCount(),
		CreatedAt:     q.CreatedAt(),
		UpdatedAt:     q.UpdatedAt(),
	}
}

func documentToQuiz(doc *quizDocument) (*quizdomain.Quiz, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.QuizID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}
	ownerID, err := uuid.ParseUUID(doc.OwnerID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	// CategoryID is optional; an empty string stays a zero UUID.
	var categoryID uuid.UUID
	if doc.CategoryID != "" {
		categoryID, err = uuid.ParseUUID(doc.CategoryID)
		if err != nil {
			return nil, errs.ErrInvalidInput
		}
	}

	return quizdomain.Reconstruct(
		id,
		ownerID,
		doc.Title,
		doc.Description,
		categoryID,
		doc.Tags,
		quizdomain.Status(doc.Status),
		doc.QuestionCount,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
