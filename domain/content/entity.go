// Package content defines the gallery and comic entities and their
// persistence layer.
package content

import (
	"time"
)

// StringList is a JSON-serialized string slice column.
type StringList []string

// Gallery represents a purchasable image gallery.
type Gallery struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Thumbnail   string     `gorm:"not null;type:text" json:"thumbnail"`
	ImageURLs   StringList `gorm:"serializer:json" json:"imageUrls"`
	Color       string     `gorm:"type:text" json:"color"`
	Price       string     `gorm:"type:text" json:"price"`
	Description string     `gorm:"type:text" json:"description"`
	Tags        StringList `gorm:"serializer:json" json:"tags"`
	IsPublic    bool       `gorm:"index" json:"isPublic"`
	LikesCount  int        `gorm:"not null;default:0" json:"likesCount"`
	UserID      string     `gorm:"index;not null;type:text" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Gallery entity.
func (Gallery) TableName() string {
	return "galleries"
}

// Comic represents a purchasable comic episode.
type Comic struct {
	ID          string     `gorm:"primaryKey;type:text" json:"id"`
	Title       string     `gorm:"not null;type:text" json:"title"`
	Thumbnail   string     `gorm:"not null;type:text" json:"thumbnail"`
	ImageURLs   StringList `gorm:"serializer:json" json:"imageUrls"`
	Color       string     `gorm:"type:text" json:"color"`
	Price       string     `gorm:"type:text" json:"price"`
	Episode     *int       `json:"episode"`
	Description string     `gorm:"type:text" json:"description"`
	Tags        StringList `gorm:"serializer:json" json:"tags"`
	IsPublic    bool       `gorm:"index" json:"isPublic"`
	LikesCount  int        `gorm:"not null;default:0" json:"likesCount"`
	UserID      string     `gorm:"index;not null;type:text" json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// TableName returns the table name for the Comic entity.
func (Comic) TableName() string {
	return "comics"
}
