package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tavolo-app/backend/internal/models"
)

// PlaceSearchRepository records place-search queries for the recent-searches
// list. Recording is best-effort: callers log failures and move on.
type PlaceSearchRepository interface {
	RecordSearch(ctx context.Context, search *models.PlaceSearch) error
	RecentSearches(ctx context.Context, userID string, limit int64) ([]models.PlaceSearch, error)
}

// MongoPlaceSearchRepository implements PlaceSearchRepository on MongoDB
type MongoPlaceSearchRepository struct {
	collection *mongo.Collection
}

// NewMongoPlaceSearchRepository creates a new MongoPlaceSearchRepository
func NewMongoPlaceSearchRepository(db *mongo.Database) *MongoPlaceSearchRepository {
	return &MongoPlaceSearchRepository{collection: db.Collection("place_searches")}
}

func (r *MongoPlaceSearchRepository) RecordSearch(ctx context.Context, search *models.PlaceSearch) error {
	_, err := r.collection.InsertOne(ctx, search)
	return err
}

func (r *MongoPlaceSearchRepository) RecentSearches(ctx context.Context, userID string, limit int64) ([]models.PlaceSearch, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var searches []models.PlaceSearch
	if err := cursor.All(ctx, &searches); err != nil {
		return nil, err
	}
	return searches, nil
}
