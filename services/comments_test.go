package services

import (
	"context"
	"testing"

	"github.com/bolhadev/blog-backend/errs"
)

func TestCommentModeration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, PostInput{Title: "Comentável", Content: "x", Published: true})

	c, err := env.comments.Create(ctx, post.ID, CommentInput{
		AuthorName:  "  Ana ",
		AuthorEmail: "Ana <ana@example.com>",
		Content:     "Ótimo texto!",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.Approved {
		t.Error("new comment is approved")
	}
	if c.AuthorName != "Ana" || c.AuthorEmail == nil || *c.AuthorEmail != "ana@example.com" {
		t.Errorf("comment = %+v", c)
	}

	if got := env.comments.ListApproved(ctx, post.ID); len(got) != 0 {
		t.Fatalf("pending comment listed publicly: %+v", got)
	}

	pending, err := env.comments.ListAll(ctx, true)
	if err != nil || len(pending) != 1 {
		t.Fatalf("ListAll pending = %v, %v", pending, err)
	}
	if pending[0].Post == nil || pending[0].Post.Slug != "comentavel" {
		t.Errorf("pending comment post = %+v", pending[0].Post)
	}

	for i := 0; i < 2; i++ {
		approved, err := env.comments.Approve(ctx, c.ID)
		if err != nil {
			t.Fatalf("Approve #%d: %v", i+1, err)
		}
		if !approved.Approved {
			t.Errorf("Approve #%d left approved = false", i+1)
		}
	}

	public := env.comments.ListApproved(ctx, post.ID)
	if len(public) != 1 || public[0].ID != c.ID {
		t.Fatalf("approved list = %+v", public)
	}

	if err := env.comments.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := env.comments.Delete(ctx, c.ID); !errs.IsNotFound(err) {
		t.Errorf("second Delete err = %v, want not found", err)
	}
	if _, err := env.comments.Approve(ctx, c.ID); !errs.IsNotFound(err) {
		t.Errorf("Approve deleted comment err = %v, want not found", err)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post := env.createPost(t, PostInput{Title: "Post", Content: "x", Published: true})
	draft := env.createPost(t, PostInput{Title: "Draft", Content: "x"})

	tests := []struct {
		name   string
		postID uint
		in     CommentInput
		check  func(error) bool
	}{
		{"no content", post.ID, CommentInput{AuthorName: "Ana"}, errs.IsMissingRequiredFieldError},
		{"no author", post.ID, CommentInput{Content: "oi"}, errs.IsMissingRequiredFieldError},
		{"bad email", post.ID, CommentInput{AuthorName: "Ana", Content: "oi", AuthorEmail: "not-an-email"}, errs.IsInvalidFieldError},
		{"draft post", draft.ID, CommentInput{AuthorName: "Ana", Content: "oi"}, errs.IsNotFound},
		{"missing post", 999, CommentInput{AuthorName: "Ana", Content: "oi"}, errs.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.comments.Create(ctx, tt.postID, tt.in)
			if !tt.check(err) {
				t.Errorf("err = %v", err)
			}
		})
	}

	all, err := env.comments.ListAll(ctx, false)
	if err != nil || len(all) != 0 {
		t.Errorf("rejected comments were stored: %v, %v", all, err)
	}
}
