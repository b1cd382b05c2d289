package database

import (
	"context"
	"errors"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
	"gorm.io/gorm"
)

type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db}
}

// FindApprovedByPost returns the approved comments of a post, newest first.
func (r *CommentRepo) FindApprovedByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND approved = ?", postID, true).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// FindAll returns every comment, newest first, with the post title and slug.
func (r *CommentRepo) FindAll(ctx context.Context, pendingOnly bool) ([]models.Comment, error) {
	db := r.db.WithContext(ctx).
		Preload("Post", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title", "slug") }).
		Order("created_at DESC").Order("id DESC")
	if pendingOnly {
		db = db.Where("approved = ?", false)
	}

	comments := []models.Comment{}
	err := db.Find(&comments).Error
	return comments, err
}

func (r *CommentRepo) FindByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("comment")
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// Add inserts a comment. Comments always start unapproved.
func (r *CommentRepo) Add(ctx context.Context, comment *models.Comment) error {
	comment.Approved = false
	return r.db.WithContext(ctx).Omit("Post").Create(comment).Error
}

// Approve marks a comment approved. Approving twice is a no-op.
func (r *CommentRepo) Approve(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.Approved {
		return comment, nil
	}

	if err := r.db.WithContext(ctx).Model(comment).Update("approved", true).Error; err != nil {
		return nil, err
	}
	comment.Approved = true
	return comment, nil
}

func (r *CommentRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFound("comment")
	}
	return nil
}
