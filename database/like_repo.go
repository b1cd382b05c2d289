package database

import (
	"context"
	"errors"

	"github.com/bolhadev/blog-backend/models"
	"gorm.io/gorm"
)

type LikeRepo struct {
	db *gorm.DB
}

func NewLikeRepo(db *gorm.DB) *LikeRepo {
	return &LikeRepo{db}
}

// Count returns the number of likes on a post.
func (r *LikeRepo) Count(ctx context.Context, postID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&n).Error
	return n, err
}

// Toggle removes the visitor's like if there is one and adds it otherwise.
// It reports whether the post is liked afterwards.
//
// The unique index on (post_id, fingerprint) keeps concurrent toggles from
// creating two rows; the losing insert is reported as liked.
func (r *LikeRepo) Toggle(ctx context.Context, postID uint, fingerprint string) (bool, error) {
	liked := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Like
		res := tx.Where("post_id = ? AND fingerprint = ?", postID, fingerprint).Limit(1).Find(&existing)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			liked = false
			return tx.Delete(&existing).Error
		}

		liked = true
		return tx.Omit("Post").Create(&models.Like{PostID: postID, Fingerprint: fingerprint}).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return liked, nil
}

// Add inserts a like row directly.
func (r *LikeRepo) Add(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Omit("Post").Create(like).Error
}
