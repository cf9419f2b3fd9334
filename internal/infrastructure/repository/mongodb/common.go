// Package mongodb contains the MongoDB implementations of the application
// persistence ports.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/quizforge/quizforge/internal/domain/errs"
)

// Collection names.
const (
	QuizCollection     = "quizzes"
	QuestionCollection = "questions"
	CategoryCollection = "categories"
	UserCollection     = "users"
)

// HandleMongoError converts a MongoDB driver error into a domain error:
// mongo.ErrNoDocuments becomes errs.ErrNotFound, duplicate key violations
// become errs.ErrAlreadyExists, everything else is wrapped.
func HandleMongoError(err error, resourceType string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return errs.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return errs.ErrAlreadyExists
	}

	return fmt.Errorf("failed to operate on %s: %w", resourceType, err)
}

// UpsertOptions returns the standard options for upsert writes.
func UpsertOptions() *options.UpdateOneOptionsBuilder {
	return options.UpdateOne().SetUpsert(true)
}

// FindWithPagination returns find options with sorting and pagination.
// sortOrder is 1 for ascending, -1 for descending.
func FindWithPagination(offset, limit int, sortField string, sortOrder int) *options.FindOptionsBuilder {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortOrder}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
}

// decodeAll drains a cursor, mapping each document through decoder. Corrupt
// documents are skipped rather than failing the whole listing.
func decodeAll[T any, R any](ctx context.Context, cursor *mongo.Cursor, decoder func(*T) (R, error)) ([]R, error) {
	defer cursor.Close(ctx)

	results := make([]R, 0)
	for cursor.Next(ctx) {
		var doc T
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		item, err := decoder(&doc)
		if err != nil {
			continue
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return results, nil
}
