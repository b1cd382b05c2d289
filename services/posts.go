package services

import (
	"context"
	"strings"
	"time"

	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/database"
	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRecentCount    = 5
	DefaultMostLikedCount = 3
	DefaultPageSize       = 12
	MaxPageSize           = 50
)

// Page is one page of a paginated listing.
type Page struct {
	Posts      []RenderedPost `json:"posts"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// TagSummary is an entry of the tag index.
type TagSummary struct {
	Slug  string `json:"slug"`
	Name  string `json:"name"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// PostInput carries the editable fields of a post from the admin panel.
type PostInput struct {
	Title       string
	Slug        string
	Description string
	Content     string
	Published   bool
	CoverImage  *string
	CategoryID  *uint
	Tags        []string
}

// PostService turns stored posts into RenderedPosts.
//
// The public accessors never return store errors: failures are logged and
// reported as "nothing found". The admin operations return errors.
type PostService struct {
	posts      PostStore
	tags       TagStore
	categories CategoryStore
	renderer   *content.Renderer
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPostService(posts PostStore, tags TagStore, categories CategoryStore, renderer *content.Renderer) *PostService {
	return &PostService{
		posts:      posts,
		tags:       tags,
		categories: categories,
		renderer:   renderer,
		logger:     log.With().Str("service", "posts").Logger(),
		now:        time.Now,
	}
}

func (s *PostService) list(ctx context.Context, op string, q database.PostQuery) []RenderedPost {
	posts, err := s.posts.List(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Str("op", op).Msg("listing posts failed")
		return []RenderedPost{}
	}
	return renderPosts(s.renderer, posts)
}

// BySlug returns a published post.
func (s *PostService) BySlug(ctx context.Context, slug string) (*RenderedPost, bool) {
	post, err := s.posts.FindBySlug(ctx, slug, true)
	if err != nil {
		if !errs.IsNotFound(err) {
			s.logger.Error().Err(err).Str("slug", slug).Msg("finding post failed")
		}
		return nil, false
	}
	rp := renderPost(s.renderer, *post)
	return &rp, true
}

// ByCategoryAndSlug returns a published post only if it sits in the given category.
func (s *PostService) ByCategoryAndSlug(ctx context.Context, categorySlug, slug string) (*RenderedPost, bool) {
	rp, ok := s.BySlug(ctx, slug)
	if !ok || rp.CategorySlug == nil || *rp.CategorySlug != categorySlug {
		return nil, false
	}
	return rp, true
}

// ByTag accepts either a tag slug or the free-text tag.
func (s *PostService) ByTag(ctx context.Context, tag string) []RenderedPost {
	slug := content.NormalizeTag(tag)
	if slug == "" {
		return []RenderedPost{}
	}
	return s.list(ctx, "by tag", database.PostQuery{PublishedOnly: true, TagSlug: slug})
}

func (s *PostService) MostLiked(ctx context.Context, count int) []RenderedPost {
	if count <= 0 {
		count = DefaultMostLikedCount
	}
	return s.list(ctx, "most liked", database.PostQuery{PublishedOnly: true, OrderBy: database.OrderByLikes, Limit: count})
}

func (s *PostService) Recent(ctx context.Context, count int) []RenderedPost {
	if count <= 0 {
		count = DefaultRecentCount
	}
	return s.list(ctx, "recent", database.PostQuery{PublishedOnly: true, Limit: count})
}

func (s *PostService) AllPublished(ctx context.Context) []RenderedPost {
	return s.list(ctx, "all published", database.PostQuery{PublishedOnly: true})
}

// ClampPage forces page to at least 1 and pageSize into [1, MaxPageSize],
// using DefaultPageSize when pageSize is not positive.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// ByCategory returns one page of a category's published posts along with the total.
func (s *PostService) ByCategory(ctx context.Context, categorySlug string, page, pageSize int) Page {
	page, pageSize = ClampPage(page, pageSize)
	result := Page{Posts: []RenderedPost{}, Page: page, PageSize: pageSize}

	q := database.PostQuery{
		PublishedOnly: true,
		CategorySlug:  categorySlug,
		Limit:         pageSize,
		Offset:        (page - 1) * pageSize,
	}

	var posts []models.Post
	var total int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.posts.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.posts.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("category", categorySlug).Msg("listing category page failed")
		return result
	}

	result.Posts = renderPosts(s.renderer, posts)
	result.Total = total
	result.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	return result
}

// Tags lists the tags of published posts.
func (s *PostService) Tags(ctx context.Context) []TagSummary {
	counts, err := s.tags.ListPublished(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing tags failed")
		return []TagSummary{}
	}

	out := make([]TagSummary, 0, len(counts))
	for _, c := range counts {
		out = append(out, TagSummary{
			Slug:  c.Slug,
			Name:  content.DenormalizeTag(c.Slug),
			Label: c.Value,
			Count: c.Count,
		})
	}
	return out
}

// AdminList returns every post, drafts included, newest first.
func (s *PostService) AdminList(ctx context.Context) ([]RenderedPost, error) {
	posts, err := s.posts.List(ctx, database.PostQuery{OrderBy: database.OrderByCreatedAt})
	if err != nil {
		return nil, errs.NewDatabaseError("list", "posts", err)
	}
	return renderPosts(s.renderer, posts), nil
}

// Get returns any post by id, drafts included.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	return post, nil
}

func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	post := &models.Post{}
	if err := s.apply(ctx, post, in); err != nil {
		return nil, err
	}

	now := s.now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Published {
		post.PublishedAt = &now
	}

	if err := s.posts.Add(ctx, post); err != nil {
		return nil, errs.NewDatabaseError("create", "post", err)
	}
	return s.Get(ctx, post.ID)
}

func (s *PostService) Update(ctx context.Context, id uint, in PostInput) (*models.Post, error) {
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, post, in); err != nil {
		return nil, err
	}

	now := s.now()
	post.UpdatedAt = now
	if post.Published && post.PublishedAt == nil {
		post.PublishedAt = &now
	}
	post.Category = nil

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, errs.NewDatabaseError("update", "post", err)
	}
	return s.Get(ctx, post.ID)
}

func (s *PostService) Delete(ctx context.Context, id uint) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "post", err)
	}
	return nil
}

// apply validates in and copies it onto post.
func (s *PostService) apply(ctx context.Context, post *models.Post, in PostInput) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return errs.NewMissingRequiredFieldError("title")
	}
	if strings.TrimSpace(in.Content) == "" {
		return errs.NewMissingRequiredFieldError("content")
	}

	slugSource := in.Slug
	if strings.TrimSpace(slugSource) == "" {
		slugSource = title
	}
	slug := content.NormalizeTag(slugSource)
	if slug == "" {
		return errs.NewInvalidFieldError("slug", "must contain letters or digits")
	}
	taken, err := s.posts.SlugExists(ctx, slug, post.ID)
	if err != nil {
		return errs.NewDatabaseError("check", "slug", err)
	}
	if taken {
		return errs.NewAlreadyExists("slug")
	}

	if in.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if errs.IsNotFound(err) {
				return errs.NewInvalidFieldError("categoryId", "category does not exist")
			}
			return errs.NewDatabaseError("find", "category", err)
		}
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = content.Snippet(in.Content)
	}

	post.Title = title
	post.Slug = slug
	post.Description = description
	post.Content = in.Content
	post.Published = in.Published
	post.CoverImage = in.CoverImage
	post.CategoryID = in.CategoryID
	post.Tags = buildTags(in.Tags)
	return nil
}

func buildTags(values []string) []models.PostTag {
	cleaned := content.CleanTags(values)
	tags := make([]models.PostTag, 0, len(cleaned))
	for _, v := range cleaned {
		tags = append(tags, models.PostTag{Value: v, Slug: content.NormalizeTag(v)})
	}
	return tags
}
