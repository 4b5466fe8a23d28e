package repositories

import (
	"context"

	"github.com/studybuddy/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MatchRepository defines the interface for persisted match results. Only a
// read path exists: the live matching endpoint recomputes and never writes.
type MatchRepository interface {
	ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Match, error)
}

type mongoMatchRepository struct {
	collection *mongo.Collection
}

// NewMongoMatchRepository creates a new MongoDB-backed MatchRepository
func NewMongoMatchRepository(db *mongo.Database) MatchRepository {
	return &mongoMatchRepository{collection: db.Collection("matches")}
}

func (r *mongoMatchRepository) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Match, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"user1": userID},
		bson.M{"user2": userID},
	}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	matches := []models.Match{}
	if err = cursor.All(ctx, &matches); err != nil {
		return nil, err
	}
	return matches, nil
}
