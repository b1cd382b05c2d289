package services

import (
	"context"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	maxCommentLength    = 5000
	maxAuthorNameLength = 100
)

type CommentInput struct {
	AuthorName  string
	AuthorEmail string
	Content     string
}

// CommentService handles reader comments and their moderation queue.
type CommentService struct {
	comments CommentStore
	posts    PostStore
	notifier Notifier
	logger   zerolog.Logger
}

type CommentOption func(*CommentService)

// WithNotifier announces every new comment waiting for moderation.
func WithNotifier(n Notifier) CommentOption {
	return func(s *CommentService) {
		s.notifier = n
	}
}

func NewCommentService(comments CommentStore, posts PostStore, opts ...CommentOption) *CommentService {
	s := &CommentService{
		comments: comments,
		posts:    posts,
		logger:   log.With().Str("service", "comments").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListApproved returns the approved comments of a post. Failures yield an empty list.
func (s *CommentService) ListApproved(ctx context.Context, postID uint) []models.Comment {
	comments, err := s.comments.FindApprovedByPost(ctx, postID)
	if err != nil {
		s.logger.Error().Err(err).Uint("postID", postID).Msg("listing comments failed")
		return []models.Comment{}
	}

	// the store filters already; never let a pending comment through
	out := comments[:0]
	for _, c := range comments {
		if c.Approved {
			out = append(out, c)
		}
	}
	return out
}

// Create stores a comment awaiting moderation on a published post.
func (s *CommentService) Create(ctx context.Context, postID uint, in CommentInput) (*models.Comment, error) {
	name := strings.TrimSpace(in.AuthorName)
	body := strings.TrimSpace(in.Content)
	if body == "" {
		return nil, errs.NewMissingRequiredFieldError("content")
	}
	if name == "" {
		return nil, errs.NewMissingRequiredFieldError("authorName")
	}
	if utf8.RuneCountInString(body) > maxCommentLength {
		return nil, errs.NewInvalidFieldError("content", "too long")
	}
	if utf8.RuneCountInString(name) > maxAuthorNameLength {
		return nil, errs.NewInvalidFieldError("authorName", "too long")
	}

	comment := &models.Comment{PostID: postID, AuthorName: name, Content: body}
	if email := strings.TrimSpace(in.AuthorEmail); email != "" {
		addr, err := mail.ParseAddress(email)
		if err != nil {
			return nil, errs.NewInvalidFieldError("authorEmail", "not a valid address")
		}
		comment.AuthorEmail = &addr.Address
	}

	ok, err := s.posts.Exists(ctx, postID, true)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "post", err)
	}
	if !ok {
		return nil, errs.NewNotFound("post")
	}

	if err := s.comments.Add(ctx, comment); err != nil {
		return nil, errs.NewDatabaseError("create", "comment", err)
	}

	if s.notifier != nil {
		go s.notifyPending(context.WithoutCancel(ctx), comment)
	}
	return comment, nil
}

// notifyPending runs detached from the request; failures are only logged.
func (s *CommentService) notifyPending(ctx context.Context, c *models.Comment) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	subject, body := pendingCommentEmail(c.PostID, c.AuthorName, c.Content)
	if err := s.notifier.Notify(ctx, subject, body); err != nil {
		s.logger.Warn().Err(err).Uint("commentID", c.ID).Msg("moderation notification failed")
	}
}

// ListAll returns comments for moderation, optionally only the pending ones.
func (s *CommentService) ListAll(ctx context.Context, pendingOnly bool) ([]models.Comment, error) {
	comments, err := s.comments.FindAll(ctx, pendingOnly)
	if err != nil {
		return nil, errs.NewDatabaseError("list", "comments", err)
	}
	return comments, nil
}

// Approve is idempotent.
func (s *CommentService) Approve(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.comments.Approve(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("approve", "comment", err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id uint) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "comment", err)
	}
	return nil
}
