package services

import (
	"context"
	"strings"
	"time"

	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const msgNameAndSlugRequired = "Nome e slug são obrigatórios"

type CategoryInput struct {
	Name        string
	Slug        string
	Description string
}

type CategoryService struct {
	categories CategoryStore
	logger     zerolog.Logger
	now        func() time.Time
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{
		categories: categories,
		logger:     log.With().Str("service", "categories").Logger(),
		now:        time.Now,
	}
}

// List returns all categories by name. Failures yield an empty list.
func (s *CategoryService) List(ctx context.Context) []models.Category {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing categories failed")
		return []models.Category{}
	}
	return categories
}

func (s *CategoryService) BySlug(ctx context.Context, slug string) (*models.Category, bool) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if err != nil {
		if !errs.IsNotFound(err) {
			s.logger.Error().Err(err).Str("slug", slug).Msg("finding category failed")
		}
		return nil, false
	}
	return category, true
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	category := &models.Category{}
	if err := applyCategory(category, in); err != nil {
		return nil, err
	}
	now := s.now()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := s.categories.Add(ctx, category); err != nil {
		return nil, errs.NewDatabaseError("create", "category", err)
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, in CategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyCategory(category, in); err != nil {
		return nil, err
	}
	category.UpdatedAt = s.now()

	if err := s.categories.Update(ctx, category); err != nil {
		return nil, errs.NewDatabaseError("update", "category", err)
	}
	return category, nil
}

// Delete removes a category and detaches its posts.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "category", err)
	}
	return nil
}

func applyCategory(category *models.Category, in CategoryInput) error {
	name := strings.TrimSpace(in.Name)
	slug := content.NormalizeTag(in.Slug)
	if name == "" || slug == "" {
		return errs.NewBadRequestError(msgNameAndSlugRequired)
	}

	category.Name = name
	category.Slug = slug
	category.Description = nil
	if d := strings.TrimSpace(in.Description); d != "" {
		category.Description = &d
	}
	return nil
}
