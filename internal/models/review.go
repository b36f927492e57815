package models

import "time"

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a rating plus free-text body left by a user for a restaurant.
// Only the author (matched on user_id) may update or delete it.
type Review struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"index;size:128"` // author, Profile.UserID
	RestaurantID uint      `json:"restaurant_id" gorm:"index"`
	Body         string    `json:"body" gorm:"type:text"`
	Rating       int       `json:"rating"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateReviewRequest defines the request body for posting a review
type CreateReviewRequest struct {
	RestaurantID uint   `json:"restaurant_id" validate:"required"`
	Body         string `json:"body" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
}

// UpdateReviewRequest defines the request body for editing an existing review
type UpdateReviewRequest struct {
	Body   string `json:"body" validate:"required"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}
