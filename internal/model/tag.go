package model

import "time"

// Tag is a classification label that can be attached to videos. Titles are
// unique across all tags.
type Tag struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"uniqueIndex;size:255;not null"`
	Description string    `json:"description" gorm:"size:500"`
	UserID      uint      `json:"user_id" gorm:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
