package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/quizforge/quizforge/internal/domain/errs"
	userdomain "github.com/quizforge/quizforge/internal/domain/user"
	"github.com/quizforge/quizforge/internal/domain/uuid"
)

// UserRepository stores the local mirror of externally-authenticated users.
type UserRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewUserRepository creates a UserRepository.
func NewUserRepository(collection *mongo.Collection, logger *slog.Logger) *UserRepository {
	return &UserRepository{collection: collection, logger: logger}
}

// FindByID finds a user by local ID.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error) {
	if id.IsZero() {
		return nil, errs.ErrInvalidInput
	}

	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"user_id": id.String()}).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}
	return documentToUser(&doc)
}

// FindByExternalID finds a user by the subject the auth provider issued.
func (r *UserRepository) FindByExternalID(ctx context.Context, externalID string) (*userdomain.User, error) {
	if externalID == "" {
		return nil, errs.ErrInvalidInput
	}

	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"external_id": externalID}).Decode(&doc)
	if err != nil {
		return nil, HandleMongoError(err, "user")
	}
	return documentToUser(&doc)
}

// Save upserts a user keyed by local ID.
func (r *UserRepository) Save(ctx context.Context, u *userdomain.User) error {
	if u == nil || u.ID().IsZero() {
		return errs.ErrInvalidInput
	}

	filter := bson.M{"user_id": u.ID().String()}
	update := bson.M{"$set": userToDocument(u)}

	_, err := r.collection.UpdateOne(ctx, filter, update, UpsertOptions())
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to save user",
			slog.String("user_id", u.ID().String()),
			slog.String("error", err.Error()),
		)
	}
	return HandleMongoError(err, "user")
}

// userDocument is the MongoDB shape of a user.
type userDocument struct {
	UserID      string    `bson:"user_id"`
	ExternalID  string    `bson:"external_id"`
	Username    string    `bson:"username"`
	Email       string    `bson:"email"`
	DisplayName string    `bson:"display_name"`
	IsAdmin     bool      `bson:"is_admin"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func userToDocument(u *userdomain.User) userDocument {
	return userDocument{
		UserID:      u.ID().String(),
		ExternalID:  u.ExternalID(),
		Username:    u.Username(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		IsAdmin:     u.IsAdmin(),
		IsActive:    u.IsActive(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}

func documentToUser(doc *userDocument) (*userdomain.User, error) {
	if doc == nil {
		return nil, errs.ErrInvalidInput
	}

	id, err := uuid.ParseUUID(doc.UserID)
	if err != nil {
		return nil, errs.ErrInvalidInput
	}

	return userdomain.Reconstruct(
		id,
		doc.ExternalID,
		doc.Username,
		doc.Email,
		doc.DisplayName,
		doc.IsAdmin,
		doc.IsActive,
		doc.CreatedAt,
		doc.UpdatedAt,
	), nil
}
