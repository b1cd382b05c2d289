package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// MinQueryLength is the shortest trimmed query, in characters, that reaches the store.
const MinQueryLength = 2

// SearchService runs substring searches over published posts.
type SearchService struct {
	posts    PostStore
	renderer *content.Renderer
	logger   zerolog.Logger
}

func NewSearchService(posts PostStore, renderer *content.Renderer) *SearchService {
	return &SearchService{
		posts:    posts,
		renderer: renderer,
		logger:   log.With().Str("service", "search").Logger(),
	}
}

// MeetsThreshold reports whether the trimmed query is long enough to search.
func MeetsThreshold(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= MinQueryLength
}

// Query matches the trimmed query against title, description, content and
// tags of published posts, newest first. Short queries return an empty
// result without touching the store. Store failures are returned.
func (s *SearchService) Query(ctx context.Context, query string) ([]RenderedPost, error) {
	if !MeetsThreshold(query) {
		return []RenderedPost{}, nil
	}

	posts, err := s.posts.List(ctx, database.PostQuery{
		PublishedOnly: true,
		Search:        strings.TrimSpace(query),
		OrderBy:       database.OrderByPublishedAt,
	})
	if err != nil {
		return nil, err
	}
	return renderPosts(s.renderer, posts), nil
}

// Search is Query with store failures logged and reported as no results.
func (s *SearchService) Search(ctx context.Context, query string) []RenderedPost {
	posts, err := s.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("search failed")
		return []RenderedPost{}
	}
	return posts
}
