package models

import "time"

// Relationship is a directed follow edge between two users.
// The composite unique index makes the ordered (follower, followed) pair
// unique at the store level, so two concurrent follows cannot produce
// duplicate edges.
type Relationship struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID string    `json:"follower_id" gorm:"index;type:varchar(36);not null;uniqueIndex:idx_follower_followed"`
	FollowedID string    `json:"followed_id" gorm:"index;type:varchar(36);not null;uniqueIndex:idx_follower_followed"`
	CreatedAt  time.Time `json:"created_at"`
}
