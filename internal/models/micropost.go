package models

import "time"

// Micropost is a short status update authored by a single user.
type Micropost struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36);not null" validate:"required"`
	Content   string    `json:"content" gorm:"type:varchar(140)" validate:"required,max=140"`
	CreatedAt time.Time `json:"created_at"`
}
