package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/bolhadev/blog-backend/content"
	"github.com/bolhadev/blog-backend/database"
	"github.com/bolhadev/blog-backend/database/dbtest"
	"github.com/bolhadev/blog-backend/errs"
	"github.com/bolhadev/blog-backend/models"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	db         database.Database
	renderer   *content.Renderer
	posts      *PostService
	search     *SearchService
	likes      *LikeService
	comments   *CommentService
	categories *CategoryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := database.New(dbtest.New(t))
	r := content.NewRenderer()

	env := &testEnv{
		db:         db,
		renderer:   r,
		posts:      NewPostService(db.PostRepo(), db.TagRepo(), db.CategoryRepo(), r),
		search:     NewSearchService(db.PostRepo(), r),
		likes:      NewLikeService(db.LikeRepo(), db.PostRepo()),
		comments:   NewCommentService(db.CommentRepo(), db.PostRepo()),
		categories: NewCategoryService(db.CategoryRepo()),
	}
	env.posts.now = func() time.Time { return fixedNow }
	env.categories.now = func() time.Time { return fixedNow }
	return env
}

func (e *testEnv) createPost(t *testing.T, in PostInput) *models.Post {
	t.Helper()
	post, err := e.posts.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create post %q: %v", in.Title, err)
	}
	return post
}

// failingPostStore fails every call and counts how often it was reached.
type failingPostStore struct {
	calls int
}

var errStoreDown = errors.New("connection refused")

func (f *failingPostStore) List(context.Context, database.PostQuery) ([]models.Post, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingPostStore) Count(context.Context, database.PostQuery) (int64, error) {
	f.calls++
	return 0, errStoreDown
}

func (f *failingPostStore) FindBySlug(context.Context, string, bool) (*models.Post, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingPostStore) FindByID(context.Context, uint) (*models.Post, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingPostStore) Exists(context.Context, uint, bool) (bool, error) {
	f.calls++
	return false, errStoreDown
}

func (f *failingPostStore) SlugExists(context.Context, string, uint) (bool, error) {
	f.calls++
	return false, errStoreDown
}

func (f *failingPostStore) Add(context.Context, *models.Post) error {
	f.calls++
	return errStoreDown
}

func (f *failingPostStore) Update(context.Context, *models.Post) error {
	f.calls++
	return errStoreDown
}

func (f *failingPostStore) Delete(context.Context, uint) error {
	f.calls++
	return errStoreDown
}

type failingTagStore struct{}

func (failingTagStore) ListPublished(context.Context) ([]database.TagCount, error) {
	return nil, errStoreDown
}

func TestPostServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post := env.createPost(t, PostInput{
		Title:     "Vender na Shopee em 2024",
		Content:   "Primeiro parágrafo do texto.\n\nSegundo parágrafo.",
		Published: true,
		Tags:      []string{"Shopee", " shopee ", "Marketplace", ""},
	})

	if post.Slug != "vender-na-shopee-em-2024" {
		t.Errorf("slug = %q", post.Slug)
	}
	if post.Description != "Primeiro parágrafo do texto." {
		t.Errorf("description = %q", post.Description)
	}
	if post.PublishedAt == nil || !post.PublishedAt.Equal(fixedNow) {
		t.Errorf("publishedAt = %v, want %v", post.PublishedAt, fixedNow)
	}
	if got := strings.Join(post.TagValues(), ","); got != "Shopee,Marketplace" {
		t.Errorf("tags = %q", got)
	}
	if got := strings.Join(post.TagSlugs(), ","); got != "shopee,marketplace" {
		t.Errorf("tag slugs = %q", got)
	}

	_, err := env.posts.Create(ctx, PostInput{Title: "Outro", Slug: "Vender na Shopee em 2024", Content: "x"})
	if !errs.IsAlreadyExists(err) {
		t.Errorf("duplicate slug err = %v, want already exists", err)
	}
	var apiErr *errs.ApiErr
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusConflict {
		t.Errorf("duplicate slug err = %#v, want a 409 ApiErr", err)
	}
}

func TestPostServiceCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	missing := uint(999)

	tests := []struct {
		name  string
		in    PostInput
		field string
	}{
		{"no title", PostInput{Content: "body"}, "title"},
		{"no content", PostInput{Title: "Title"}, "content"},
		{"slug without letters", PostInput{Title: "Title", Slug: "!!!", Content: "body"}, "slug"},
		{"unknown category", PostInput{Title: "Title", Content: "body", CategoryID: &missing}, "categoryId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.posts.Create(context.Background(), tt.in)
			var apiErr *errs.ApiErr
			if !errors.As(err, &apiErr) {
				t.Fatalf("err = %v, want *errs.ApiErr", err)
			}
			if apiErr.StatusCode != 400 || apiErr.Field != tt.field {
				t.Errorf("got status %d field %q, want 400 %q", apiErr.StatusCode, apiErr.Field, tt.field)
			}
		})
	}
}

func TestPostServiceUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	draft := env.createPost(t, PostInput{Title: "Rascunho", Content: "texto", Tags: []string{"go"}})
	if draft.PublishedAt != nil {
		t.Fatalf("draft has publishedAt %v", draft.PublishedAt)
	}

	later := fixedNow.Add(48 * time.Hour)
	env.posts.now = func() time.Time { return later }

	updated, err := env.posts.Update(ctx, draft.ID, PostInput{
		Title:     "Rascunho",
		Slug:      draft.Slug,
		Content:   "texto novo",
		Published: true,
		Tags:      []string{"Golang", "SQL"},
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.PublishedAt == nil || !updated.PublishedAt.Equal(later) {
		t.Errorf("publishedAt = %v, want %v", updated.PublishedAt, later)
	}
	if got := strings.Join(updated.TagSlugs(), ","); got != "golang,sql" {
		t.Errorf("tag slugs = %q", got)
	}

	if _, err := env.posts.Update(ctx, 4242, PostInput{Title: "x", Content: "y"}); !errs.IsNotFound(err) {
		t.Errorf("update missing post err = %v, want not found", err)
	}
}

func TestPostServiceBySlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat, err := env.categories.Create(ctx, CategoryInput{Name: "Vendas", Slug: "vendas"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	env.createPost(t, PostInput{
		Title:      "Com imagem",
		Content:    "# Título\n\n![capa](https://img.example/capa.png)\n\ntexto",
		Published:  true,
		CategoryID: &cat.ID,
	})
	env.createPost(t, PostInput{Title: "Rascunho", Content: "texto"})

	rp, ok := env.posts.BySlug(ctx, "com-imagem")
	if !ok {
		t.Fatal("published post not found")
	}
	if rp.CoverImage == nil || *rp.CoverImage != "https://img.example/capa.png" {
		t.Errorf("cover image = %v", rp.CoverImage)
	}
	if !strings.Contains(rp.Content, `<h1 id="titulo">`) {
		t.Errorf("content not rendered: %s", rp.Content)
	}
	if rp.ReadingTime.Minutes != 1 {
		t.Errorf("reading time = %d", rp.ReadingTime.Minutes)
	}
	if rp.UpdatedAt != nil {
		t.Errorf("updatedAt = %v, want nil for an unedited post", rp.UpdatedAt)
	}
	if rp.CategorySlug == nil || *rp.CategorySlug != "vendas" {
		t.Errorf("category slug = %v", rp.CategorySlug)
	}

	if _, ok := env.posts.BySlug(ctx, "rascunho"); ok {
		t.Error("draft visible by slug")
	}
	if _, ok := env.posts.BySlug(ctx, "nope"); ok {
		t.Error("missing slug found")
	}
	if _, ok := env.posts.ByCategoryAndSlug(ctx, "vendas", "com-imagem"); !ok {
		t.Error("post not found in its category")
	}
	if _, ok := env.posts.ByCategoryAndSlug(ctx, "outra", "com-imagem"); ok {
		t.Error("post found under the wrong category")
	}
}

func TestPostServiceByCategoryPaging(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat, err := env.categories.Create(ctx, CategoryInput{Name: "Dicas", Slug: "dicas"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	for i := 0; i < 5; i++ {
		env.posts.now = func() time.Time { return fixedNow.Add(time.Duration(i) * time.Hour) }
		env.createPost(t, PostInput{Title: "Dica " + string(rune('a'+i)), Content: "x", Published: true, CategoryID: &cat.ID})
	}

	page := env.posts.ByCategory(ctx, "dicas", 2, 2)
	if page.Total != 5 || page.TotalPages != 3 || page.Page != 2 || page.PageSize != 2 {
		t.Fatalf("page meta = %+v", page)
	}
	if len(page.Posts) != 2 || page.Posts[0].Slug != "dica-c" || page.Posts[1].Slug != "dica-b" {
		t.Errorf("page 2 = %v", page.Posts)
	}

	page = env.posts.ByCategory(ctx, "dicas", -3, 0)
	if page.Page != 1 || page.PageSize != DefaultPageSize || len(page.Posts) != 5 {
		t.Errorf("clamped page = %+v", page)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, DefaultPageSize},
		{-1, -5, 1, DefaultPageSize},
		{3, 500, 3, MaxPageSize},
	}
	for _, tt := range tests {
		p, s := ClampPage(tt.page, tt.size)
		if p != tt.wantPage || s != tt.wantSize {
			t.Errorf("ClampPage(%d, %d) = %d, %d; want %d, %d", tt.page, tt.size, p, s, tt.wantPage, tt.wantSize)
		}
	}
}

func TestPostServiceTags(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createPost(t, PostInput{Title: "Um", Content: "x", Published: true, Tags: []string{"Mercado Livre", "Dicas"}})
	env.createPost(t, PostInput{Title: "Dois", Content: "x", Published: true, Tags: []string{"mercado livre"}})
	env.createPost(t, PostInput{Title: "Três", Content: "x", Tags: []string{"Oculta"}})

	tags := env.posts.Tags(ctx)
	if len(tags) != 2 {
		t.Fatalf("tags = %+v", tags)
	}
	if tags[1].Slug != "mercado-livre" || tags[1].Name != "Mercado Livre" || tags[1].Count != 2 {
		t.Errorf("tag = %+v", tags[1])
	}

	byTag := env.posts.ByTag(ctx, "Mercado Livre")
	if len(byTag) != 2 {
		t.Errorf("ByTag returned %d posts", len(byTag))
	}
	if got := env.posts.ByTag(ctx, "oculta"); len(got) != 0 {
		t.Errorf("draft tag returned %d posts", len(got))
	}
}

func TestPostServiceMostLiked(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.createPost(t, PostInput{Title: "A", Content: "x", Published: true})
	b := env.createPost(t, PostInput{Title: "B", Content: "x", Published: true})
	for _, fp := range []string{"f1", "f2"} {
		if _, err := env.likes.Toggle(ctx, b.ID, fp); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if _, err := env.likes.Toggle(ctx, a.ID, "f1"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	top := env.posts.MostLiked(ctx, 0)
	if len(top) != 2 || top[0].Slug != "b" || top[0].Likes != 2 {
		t.Errorf("most liked = %+v", top)
	}
}

func TestPostServiceSwallowsStoreErrors(t *testing.T) {
	store := &failingPostStore{}
	svc := NewPostService(store, failingTagStore{}, nil, content.NewRenderer())
	ctx := context.Background()

	if _, ok := svc.BySlug(ctx, "x"); ok {
		t.Error("BySlug ok on failing store")
	}
	if got := svc.Recent(ctx, 0); got == nil || len(got) != 0 {
		t.Errorf("Recent = %v, want empty slice", got)
	}
	if got := svc.ByCategory(ctx, "c", 1, 10); len(got.Posts) != 0 || got.Total != 0 {
		t.Errorf("ByCategory = %+v", got)
	}
	if got := svc.Tags(ctx); got == nil || len(got) != 0 {
		t.Errorf("Tags = %v", got)
	}

	if _, err := svc.AdminList(ctx); err == nil {
		t.Error("AdminList hid the store failure")
	}
}

func TestPostServiceDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	post := env.createPost(t, PostInput{Title: "Apagar", Content: "x", Published: true})
	if err := env.posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := env.posts.Delete(ctx, post.ID); !errs.IsNotFound(err) {
		t.Errorf("second Delete err = %v, want not found", err)
	}
}

func TestRenderPostUpdatedAt(t *testing.T) {
	r := content.NewRenderer()
	published := fixedNow
	tests := []struct {
		name      string
		updated   time.Time
		published *time.Time
		want      bool
	}{
		{"unedited", fixedNow, &published, false},
		{"edited within a second", fixedNow.Add(300 * time.Millisecond), &published, true},
		{"edited later", fixedNow.Add(48 * time.Hour), &published, true},
		{"same instant other zone", fixedNow.In(time.FixedZone("BRT", -3*3600)), &published, false},
		{"falls back to createdAt", fixedNow, nil, false},
		{"zero updatedAt", time.Time{}, &published, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rp := renderPost(r, models.Post{
				Slug:        "p",
				CreatedAt:   fixedNow,
				UpdatedAt:   tt.updated,
				PublishedAt: tt.published,
			})
			if got := rp.UpdatedAt != nil; got != tt.want {
				t.Errorf("updatedAt set = %v (%v), want %v", got, rp.UpdatedAt, tt.want)
			}
		})
	}
}
