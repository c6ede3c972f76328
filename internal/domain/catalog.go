package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Slug        string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description *string   `gorm:"type:text" json:"description"`
	Image       *string   `gorm:"type:text" json:"image"`
	IsActive    bool      `gorm:"default:true;index" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type OptionType string

const (
	OptionColor     OptionType = "color"
	OptionSize      OptionType = "size"
	OptionThickness OptionType = "thickness"
)

type ProductOption struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type      OptionType `gorm:"type:varchar(20);not null;index" json:"type"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Value     string     `gorm:"size:100;not null" json:"value"`
	HexColor  *string    `gorm:"size:7" json:"hexColor"`
	IsActive  bool       `gorm:"default:true;index" json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Normalize drops the hex colour on options that are not colours.
func (o *ProductOption) Normalize() {
	if o.Type != OptionColor {
		o.HexColor = nil
	}
}

type BlogPost struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	FeaturedImage *string    `gorm:"type:text" json:"featuredImage"`
	Author        string     `gorm:"size:255;not null" json:"author"`
	Category      string     `gorm:"size:100;index" json:"category"`
	Tags          []string   `gorm:"type:jsonb;serializer:json" json:"tags"`
	IsPublished   bool       `gorm:"default:false;index" json:"isPublished"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// SetPublished applies a publish-flag transition: false to true stamps the
// publish time, true to false clears it, no change keeps it.
func (b *BlogPost) SetPublished(published bool, now time.Time) {
	switch {
	case published && !b.IsPublished:
		t := now
		b.PublishedAt = &t
	case !published:
		b.PublishedAt = nil
	}
	b.IsPublished = published
}
