package database

import (
	"context"

	"github.com/bolhadev/blog-backend/models"
	"gorm.io/gorm"
)

// TagCount is one entry of the public tag index.
type TagCount struct {
	Slug  string `json:"slug"`
	Value string `json:"value"`
	Count int64  `json:"count"`
}

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindByPost returns the tags of a post in insertion order.
func (r *TagRepo) FindByPost(ctx context.Context, postID uint) ([]models.PostTag, error) {
	tags := []models.PostTag{}
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id").Find(&tags).Error
	return tags, err
}

// ListPublished returns each distinct tag slug used by a published post,
// with one author spelling and the number of posts carrying it.
func (r *TagRepo) ListPublished(ctx context.Context) ([]TagCount, error) {
	tags := []TagCount{}
	err := r.db.WithContext(ctx).
		Model(&models.PostTag{}).
		Select("post_tags.slug AS slug, MIN(post_tags.value) AS value, COUNT(*) AS count").
		Joins("JOIN posts ON posts.id = post_tags.post_id").
		Where("posts.published = ?", true).
		Group("post_tags.slug").
		Order("post_tags.slug").
		Scan(&tags).Error
	return tags, err
}

// replaceTags swaps the tag set of a post inside tx.
func replaceTags(tx *gorm.DB, postID uint, tags []models.PostTag) error {
	if err := tx.Where("post_id = ?", postID).Delete(&models.PostTag{}).Error; err != nil {
		return err
	}
	if len(tags) == 0 {
		return nil
	}

	fresh := make([]models.PostTag, 0, len(tags))
	for _, t := range tags {
		fresh = append(fresh, models.PostTag{PostID: postID, Value: t.Value, Slug: t.Slug})
	}
	return tx.Create(&fresh).Error
}
