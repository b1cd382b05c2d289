package database

import (
	"context"
	"errors"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
	"gorm.io/gorm"
)

const categoryColumns = "categories.*, " +
	"(SELECT COUNT(*) FROM posts WHERE posts.category_id = categories.id AND posts.published = ?) AS post_count"

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns every category ordered by name, with published post counts.
func (r *CategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(categoryColumns, true).
		Order("categories.name").
		Find(&categories).Error
	return categories, err
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return r.findOne(ctx, "categories.slug = ?", slug)
}

func (r *CategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	return r.findOne(ctx, "categories.id = ?", id)
}

func (r *CategoryRepo) findOne(ctx context.Context, cond string, arg interface{}) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).
		Select(categoryColumns, true).
		Where(cond, arg).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFound("category")
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepo) Add(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *CategoryRepo) Update(ctx context.Context, category *models.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete removes a category. Its posts stay and lose their category.
func (r *CategoryRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).Where("category_id = ?", id).UpdateColumn("category_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewNotFound("category")
		}
		return nil
	})
}
