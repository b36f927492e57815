package models

import "time"

// FavoriteReview marks a review as a favorite of a profile. Favorites are a
// set: the unique pair index rejects duplicates at the store and callers treat
// that conflict as a no-op.
type FavoriteReview struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID uint      `json:"profile_id" gorm:"index;uniqueIndex:idx_profile_review_fav"`
	ReviewID  uint      `json:"review_id" gorm:"index;uniqueIndex:idx_profile_review_fav"`
	CreatedAt time.Time `json:"created_at"`
}
