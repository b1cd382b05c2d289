package services

import (
	"time"

	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/models"
)

// RenderedPost is the read-only view of a post handed to pages and API
// clients. It is rebuilt on every read and never stored.
type RenderedPost struct {
	ID           uint                `json:"id"`
	Slug         string              `json:"slug"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Date         time.Time           `json:"date"`
	UpdatedAt    *time.Time          `json:"updatedAt,omitempty"`
	Tags         []string            `json:"tags"`
	TagSlugs     []string            `json:"tagSlugs"`
	Content      string              `json:"content"`
	CoverImage   *string             `json:"coverImage,omitempty"`
	ReadingTime  content.ReadingTime `json:"readingTime"`
	CategorySlug *string             `json:"categorySlug,omitempty"`
	CategoryName *string             `json:"categoryName,omitempty"`
	Likes        int64               `json:"likes"`
	Comments     int64               `json:"comments"`
	Published    bool                `json:"published"`
}

func renderPost(r *content.Renderer, p models.Post) RenderedPost {
	html := r.Render(p.Content)

	date := p.CreatedAt
	if p.PublishedAt != nil {
		date = *p.PublishedAt
	}

	rp := RenderedPost{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Date:        date,
		Tags:        p.TagValues(),
		TagSlugs:    p.TagSlugs(),
		Content:     html,
		CoverImage:  p.CoverImage,
		ReadingTime: content.EstimateReadingTime(html),
		Likes:       p.LikeCount,
		Comments:    p.CommentCount,
		Published:   p.Published,
	}

	if !p.UpdatedAt.IsZero() && !p.UpdatedAt.Equal(date) {
		updated := p.UpdatedAt
		rp.UpdatedAt = &updated
	}

	if rp.CoverImage == nil {
		if images := r.ImageURLs(p.Content); len(images) > 0 {
			rp.CoverImage = &images[0]
		}
	}

	if p.Category != nil {
		slug, name := p.Category.Slug, p.Category.Name
		rp.CategorySlug = &slug
		rp.CategoryName = &name
	}

	return rp
}

func renderPosts(r *content.Renderer, posts []models.Post) []RenderedPost {
	out := make([]RenderedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, renderPost(r, p))
	}
	return out
}
