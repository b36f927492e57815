package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaceSearch is one recorded place-search query, stored in MongoDB. It backs
// the recent-searches list and is never consulted as a results cache.
type PlaceSearch struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Query     string             `json:"query" bson:"query"`
	Results   int                `json:"results" bson:"results"` // candidate count returned
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
