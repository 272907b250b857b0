package model

import (
	"strings"
	"time"
)

// CategoryUnsorted is the sentinel category assigned to videos created by the
// ingestion watcher, which has no category information to work with.
const CategoryUnsorted = "unsorted"

// Video represents a catalog entry for a single media file. The title doubles
// as the natural dedup key for ingestion, hence the unique index.
type Video struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"uniqueIndex;size:500;not null"`
	URL         string     `json:"url" gorm:"size:500;not null"`
	Thumbnail   string     `json:"thumbnail,omitempty" gorm:"size:500"`
	Description string     `json:"description" gorm:"type:text"`
	Tags        string     `json:"-" gorm:"size:500"` // comma-joined; exposed as a list via TagList
	Category    string     `json:"category" gorm:"size:255"`
	Date        *time.Time `json:"date,omitempty"`
	UserID      *uint      `json:"user_id,omitempty" gorm:"index"` // nil for watcher-created records
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TagList splits the stored comma-joined tags into an ordered slice. A video
// without tags yields an empty slice, never nil.
func (v *Video) TagList() []string {
	tags := []string{}
	for _, t := range strings.Split(v.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
