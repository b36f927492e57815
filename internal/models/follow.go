package models

import "time"

// Follow is a directed edge from follower to followed profile, keyed by the
// identities' UserIDs. The composite unique index makes duplicate edges a
// store-level conflict.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  string    `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following;size:128"`
	FollowingID string    `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following;size:128"`
	CreatedAt   time.Time `json:"created_at"`
}
