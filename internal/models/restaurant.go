package models

import "time"

// Restaurant is the canonical record for an external place. PlaceID is the
// provider's identifier and the conflict key for the resolver's upsert: at most
// one row exists per place id no matter how often it is searched or reviewed.
// Coordinates are kept as strings as returned by the store; the feed composer
// parses them when building map markers.
type Restaurant struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PlaceID   string    `json:"place_id" gorm:"uniqueIndex;size:128"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResolvePlaceRequest defines the request body for resolving a place candidate
// into a canonical restaurant record
type ResolvePlaceRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
}
