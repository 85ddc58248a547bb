package models

import (
	"time"
)

// Blog is a blog post. Posts are hard-deleted: an admin delete removes
// the row outright, there is no tombstoning.
type Blog struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	Slug         string      `gorm:"uniqueIndex;not null" json:"slug"`
	Title        string      `gorm:"not null" json:"title"`
	HTML         string      `gorm:"type:text;not null" json:"html"`
	Excerpt      string      `gorm:"type:text" json:"excerpt"` // derived from HTML, kept in sync on content writes
	MinutesRead  int         `gorm:"not null;default:5" json:"minutesRead"`
	Categories   StringArray `gorm:"type:json" json:"categories"`
	ThumbnailURL string      `gorm:"not null" json:"thumbnailUrl"`
	Placement    string      `gorm:"not null;default:'latest';index" json:"placement"`
	IsFeatured   bool        `gorm:"not null;default:false;index" json:"isFeatured"`
	Likes        int         `gorm:"not null;default:0" json:"likes"`
	LikedBy      StringArray `gorm:"type:json" json:"-"`
	PublishedAt  time.Time   `gorm:"index" json:"publishedAt"`
	CreatedAt    time.Time   `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time   `gorm:"index" json:"updatedAt"`
}

// TableName names the table.
func (Blog) TableName() string {
	return "blogs"
}
