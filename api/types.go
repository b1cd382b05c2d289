package api

import (
	"encoding/json"

	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/models"
	"github.com/bolhadev/blog-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	postHandler     postHandler
	categoryHandler categoryHandler
	commentHandler  commentHandler
	likeHandler     likeHandler
	searchHandler   searchHandler
	siteHandler     siteHandler
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error   string `json:"error"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// tagList accepts either a JSON array of tags or the legacy form where the
// array itself arrives JSON-encoded inside a string.
type tagList []string

func (t *tagList) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*t = list
		return nil
	}

	var legacy string
	if err := json.Unmarshal(b, &legacy); err == nil {
		*t = content.DecodeTags(legacy)
		return nil
	}

	*t = tagList{}
	return nil
}

type postRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Content     string  `json:"content"`
	Published   bool    `json:"published"`
	CoverImage  *string `json:"coverImage"`
	CategoryID  *uint   `json:"categoryId"`
	Tags        tagList `json:"tags"`
}

func (p postRequest) input() services.PostInput {
	return services.PostInput{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Content:     p.Content,
		Published:   p.Published,
		CoverImage:  p.CoverImage,
		CategoryID:  p.CategoryID,
		Tags:        p.Tags,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type commentRequest struct {
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
	Content     string `json:"content"`
}

type likeRequest struct {
	Fingerprint string `json:"fingerprint"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

type likeCountResponse struct {
	Count int64 `json:"count"`
}

// postLink is the short form of a post used by widgets and search results.
type postLink struct {
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	CategorySlug *string `json:"categorySlug"`
}

type searchResponse struct {
	Query   string     `json:"query"`
	Posts   []postLink `json:"posts"`
	Count   *int       `json:"count,omitempty"`
	Message string     `json:"message,omitempty"`
	Error   string     `json:"error,omitempty"`
}

type categoryPageResponse struct {
	Category *models.Category `json:"category"`
	services.Page
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	StartedAt string `json:"startedAt"`
	Uptime    string `json:"uptime"`
}
