package mongodb

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quizforge/quizforge/internal/application/appcore"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// OwnershipChecker implements security.OwnershipChecker against the quiz
// collection. Driver failures surface as CONNECTION_ERROR so the retry
// policy treats them as transient; a missing quiz is terminal.
type OwnershipChecker struct {
	quizzes *mongo.Collection
	logger  *slog.Logger
}

// NewOwnershipChecker creates an OwnershipChecker.
func NewOwnershipChecker(quizzes *mongo.Collection, logger *slog.Logger) *OwnershipChecker {
	return &OwnershipChecker{quizzes: quizzes, logger: logger}
}

// ownershipProjection loads only the fields the checks need.
type ownershipProjection struct {
	OwnerID string `bson:"owner_id"`
	Status  string `bson:"status"`
}

func (c *OwnershipChecker) load(ctx context.Context, resourceID uuid.UUID) appcore.Result[ownershipProjection] {
	var doc ownershipProjection
	err := c.quizzes.FindOne(ctx, bson.M{"quiz_id": resourceID.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return appcore.Failure[ownershipProjection](appcore.CodeNotFound, "resource not found")
		}
		c.logger.WarnContext(ctx, "ownership lookup failed",
			slog.String("resource_id", resourceID.String()),
			slog.String("error", err.Error()),
		)
		return appcore.Failure[ownershipProjection](appcore.CodeConnection, "ownership lookup failed: "+err.Error())
	}
	return appcore.Success(doc)
}

// ValidateOwnership implements security.OwnershipChecker.
func (c *OwnershipChecker) ValidateOwnership(ctx context.Context, userID, resourceID uuid.UUID) appcore.Result[bool] {
	return appcore.Map(c.load(ctx, resourceID), func(doc ownershipProjection) bool {
		return doc.OwnerID == userID.String()
	})
}

// IsActive implements security.OwnershipChecker. Archived quizzes are the
// only inactive resources.
func (c *OwnershipChecker) IsActive(ctx context.Context, _ uuid.UUID, resourceID uuid.UUID) appcore.Result[bool] {
	return appcore.Map(c.load(ctx, resourceID), func(doc ownershipProjection) bool {
		return doc.Status != "archived"
	})
}
