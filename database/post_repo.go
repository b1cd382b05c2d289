package database

import (
	"context"
	"errors"
	"strings"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostOrder selects the sort applied by PostRepo.List.
type PostOrder int

const (
	OrderByPublishedAt PostOrder = iota
	OrderByLikes
	OrderByCreatedAt
)

// postColumns adds the aggregate counts to every post row. Only approved
// comments are counted.
const postColumns = "posts.*, " +
	"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.approved = ?) AS comment_count"

// PostQuery filters post listings. Zero values mean "no filter".
type PostQuery struct {
	PublishedOnly bool
	Slug          string
	CategorySlug  string
	TagSlug       string
	Search        string // case-insensitive substring over title, description, content and tags
	OrderBy       PostOrder
	Limit         int
	Offset        int
}

func (q PostQuery) filter(db *gorm.DB) *gorm.DB {
	if q.PublishedOnly {
		db = db.Where("posts.published = ?", true)
	}
	if q.Slug != "" {
		db = db.Where("posts.slug = ?", q.Slug)
	}
	if q.CategorySlug != "" {
		db = db.Where("posts.category_id IN (SELECT categories.id FROM categories WHERE categories.slug = ?)", q.CategorySlug)
	}
	if q.TagSlug != "" {
		db = db.Where("EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND post_tags.slug = ?)", q.TagSlug)
	}
	if q.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		db = db.Where("posts.search_text LIKE ? ESCAPE '\\'", pattern)
	}
	return db
}

func (q PostQuery) order(db *gorm.DB) *gorm.DB {
	switch q.OrderBy {
	case OrderByLikes:
		return db.Order("like_count DESC").Order("posts.published_at DESC").Order("posts.id DESC")
	case OrderByCreatedAt:
		return db.Order("posts.created_at DESC").Order("posts.id DESC")
	default:
		return db.Order("posts.published_at DESC").Order("posts.id DESC")
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

type PostRepo struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) *PostRepo {
	return &PostRepo{db}
}

// List returns posts matching q with their category, tags and counts.
func (r *PostRepo) List(ctx context.Context, q PostQuery) ([]models.Post, error) {
	db := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select(postColumns, true).
		Scopes(q.filter, q.order).
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("post_tags.id") })

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	posts := []models.Post{}
	if err := db.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Count returns how many posts match q. Ordering and paging are ignored.
func (r *PostRepo) Count(ctx context.Context, q PostQuery) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(q.filter).Count(&total).Error
	return total, err
}

// FindBySlug returns errs.ErrNotFound when no post matches.
func (r *PostRepo) FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error) {
	posts, err := r.List(ctx, PostQuery{PublishedOnly: publishedOnly, Slug: slug, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, errs.NewNotFound("post")
	}
	return &posts[0], nil
}

// FindByID returns errs.ErrNotFound when no post matches.
func (r *PostRepo) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Select(postColumns, true).
		Preload("Category").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("post_tags.id") }).
		Where("posts.id = ?", id).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("post")
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Exists reports whether a post with the given id exists.
func (r *PostRepo) Exists(ctx context.Context, id uint, publishedOnly bool) (bool, error) {
	db := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id)
	if publishedOnly {
		db = db.Where("published = ?", true)
	}
	var n int64
	err := db.Count(&n).Error
	return n > 0, err
}

// Add inserts a post together with its tags.
func (r *PostRepo) Add(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Category").Create(post).Error
}

// Update saves the post columns and replaces its tag set.
func (r *PostRepo) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(post).Error; err != nil {
			return err
		}
		return replaceTags(tx, post.ID, post.Tags)
	})
}

// Delete removes a post and everything hanging off it.
func (r *PostRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Like{}, &models.Comment{}, &models.PostTag{}} {
			if err := tx.Where("post_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("post")
		}
		return nil
	})
}

// SlugExists reports whether another post already uses slug.
func (r *PostRepo) SlugExists(ctx context.Context, slug string, exceptID uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("slug = ? AND id <> ?", slug, exceptID).
		Count(&n).Error
	return n > 0, err
}
