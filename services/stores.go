package services

import (
	"context"

	"github.com/bolhadev/blog-backend/database"
	"github.com/bolhadev/blog-backend/models"
)

// The services depend on these narrow views of the database repos.

type PostStore interface {
	List(ctx context.Context, q database.PostQuery) ([]models.Post, error)
	Count(ctx context.Context, q database.PostQuery) (int64, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error)
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint, publishedOnly bool) (bool, error)
	SlugExists(ctx context.Context, slug string, exceptID uint) (bool, error)
	Add(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type TagStore interface {
	ListPublished(ctx context.Context) ([]database.TagCount, error)
}

type CategoryStore interface {
	FindAll(ctx context.Context) ([]models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	Add(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uint) error
}

type CommentStore interface {
	FindApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	FindAll(ctx context.Context, pendingOnly bool) ([]models.Comment, error)
	Add(ctx context.Context, comment *models.Comment) error
	Approve(ctx context.Context, id uint) (*models.Comment, error)
	Delete(ctx context.Context, id uint) error
}

type LikeStore interface {
	Count(ctx context.Context, postID uint) (int64, error)
	Toggle(ctx context.Context, postID uint, fingerprint string) (bool, error)
}
