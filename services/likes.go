package services

import (
	"context"
	"strings"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxFingerprintLength = 128

// LikeService toggles and counts likes on published posts.
type LikeService struct {
	likes  LikeStore
	posts  PostStore
	logger zerolog.Logger
}

func NewLikeService(likes LikeStore, posts PostStore) *LikeService {
	return &LikeService{
		likes:  likes,
		posts:  posts,
		logger: log.With().Str("service", "likes").Logger(),
	}
}

// Toggle flips the like of fingerprint on a post and reports whether the
// post is liked afterwards. Calling it twice restores the original state.
func (s *LikeService) Toggle(ctx context.Context, postID uint, fingerprint string) (bool, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return false, errs.NewMissingRequiredFieldError("fingerprint")
	}
	if len(fingerprint) > maxFingerprintLength {
		return false, errs.NewInvalidFieldError("fingerprint", "too long")
	}

	if err := s.requirePublished(ctx, postID); err != nil {
		return false, err
	}

	liked, err := s.likes.Toggle(ctx, postID, fingerprint)
	if err != nil {
		return false, errs.NewDatabaseError("toggle", "like", err)
	}
	return liked, nil
}

// Count returns the number of likes on a post, zero on failure.
func (s *LikeService) Count(ctx context.Context, postID uint) int64 {
	n, err := s.likes.Count(ctx, postID)
	if err != nil {
		s.logger.Error().Err(err).Uint("postID", postID).Msg("counting likes failed")
		return 0
	}
	return n
}

func (s *LikeService) requirePublished(ctx context.Context, postID uint) error {
	ok, err := s.posts.Exists(ctx, postID, true)
	if err != nil {
		return errs.NewDatabaseError("find", "post", err)
	}
	if !ok {
		return errs.NewNotFound("post")
	}
	return nil
}
