package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	categorydomain "github.com/quizforge/quizforge/internal/domain/category"
	"github.com/quizforge/quizforge/internal/domain/errs"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// CategoryRepository implements category.Repository on a MongoDB collection.
// Slug uniqueness relies on a unique index on the slug field.
type CategoryRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewCategoryRepository creates a CategoryRepository.
func NewCategoryRepository(collection *mongo.Collection, logger *slog.Logger) *CategoryRepository {
	return &CategoryRepository{collection: collection, logger: logger}
}

// Create implements category.Repository.
func (r *CategoryRepository) Create(ctx context.Context, c *categorydomain.Category) error {
	if c == nil || c.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	_, err := r.collection.InsertOne(ctx, categoryToDocument(c))
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		r.logger.ErrorContext(ctx, "failed to insert category",
			slog.String("category_id", c.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "category")
}

// Update implements category.Repository.
func (r *CategoryRepository) Update(ctx context.Context, c *categorydomain.Category) error {
	if c == nil || c.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"category_id": c.ID().String()}
	result, err := r.collection.ReplaceOne(ctx, filter, categoryToDocument(c))
	if err != nil {
		return HandleMongoError(err, "category")
	}
	if result.MatchedCount == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// FindByID implements category.Repository.
func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*categorydomain.Category, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	var doc categoryDocument
	err := r.collection.FindOne(ctx, bson.M{"category_id": id.String()}).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "category")
	}
	return documentToCategory(&doc)
}

// List implements category.Repository, ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]*categorydomain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, HandleMongoError(err, "categories")
	}
	return decodeAll(ctx, cursor, documentToCategory)
}

// categoryDocument is the MongoDB shape of a category.
type categoryDocument struct {
	CategoryID string    `bson:"category_id"`
	Name       string    `bson:"name"`
	Slug       string    `bson:"slug"`
	ParentID   string    `bson:"parent_id,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at"`
}

func categoryToDocument(c *categorydomain.Category) categoryDocument {
	return categoryDocument{
		CategoryID: c.ID().String(),
		Name:       c.Name(),
		Slug:       c.Slug(),
		ParentID:   c.ParentID().String(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func documentToCategory(doc *categoryDocument) (*categorydomain.Category, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.CategoryID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	var parentID uuid.UUID
	if doc.ParentID != "" {
		parentID, err = uuid.ParseUUID(doc.ParentID)
		if err != nil {
			return nil, errs.ErrInvalidInput
		}
	}

	return categorydomain.Reconstruct(id, doc.Name, doc.Slug, parentID, doc.CreatedAt, doc.UpdatedAt), nil
}
