package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Post is a blog article. Content holds the raw markdown; rendering happens on read.
type Post struct {
	ID          uint       `json:"id" db:"id" gorm:"primaryKey"`
	Slug        string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex:idx_post_slug"`
	Title       string     `json:"title" db:"title" gorm:"type:text;not null"`
	Description string     `json:"description" db:"description" gorm:"type:text;not null"`
	Content     string     `json:"content" db:"content" gorm:"type:text;not null"`
	Published   bool       `json:"published" db:"published" gorm:"not null;index:idx_post_published"`
	PublishedAt *time.Time `json:"publishedAt,omitempty" db:"published_at" gorm:"index:idx_post_published_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at" gorm:"not null"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at" gorm:"not null"`
	CoverImage  *string    `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	CategoryID  *uint      `json:"categoryId,omitempty" db:"category_id" gorm:"index:idx_post_category_id"`

	// lower-cased title, description, content and tags. Folded in Go because
	// SQLite's LOWER only handles ASCII.
	SearchText string `json:"-" db:"search_text" gorm:"type:text;not null;default:''"`

	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
	Tags     []PostTag `json:"tags,omitempty" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`

	// filled by aggregate queries, never written
	LikeCount    int64 `json:"likeCount" gorm:"->;-:migration"`
	CommentCount int64 `json:"commentCount" gorm:"->;-:migration"`
}

// TagValues returns the tags as written by the author.
func (p Post) TagValues() []string {
	values := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		values = append(values, t.Value)
	}
	return values
}

// TagSlugs returns the normalized tag keys.
func (p Post) TagSlugs() []string {
	slugs := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		slugs = append(slugs, t.Slug)
	}
	return slugs
}

// BeforeSave keeps SearchText in step with the searchable fields.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	p.SearchText = p.searchText()
	return nil
}

func (p Post) searchText() string {
	parts := append([]string{p.Title, p.Description, p.Content}, p.TagValues()...)
	return strings.ToLower(strings.Join(parts, "\n"))
}
