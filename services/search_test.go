package services

import (
	"context"
	"testing"

	"github.com/bolhadev/blog-backend/content"
)

func TestSearchBelowThresholdSkipsStore(t *testing.T) {
	store := &failingPostStore{}
	svc := NewSearchService(store, content.NewRenderer())

	for _, q := range []string{"", "a", "  a  ", "é"} {
		posts, err := svc.Query(context.Background(), q)
		if err != nil {
			t.Errorf("Query(%q) err = %v", q, err)
		}
		if posts == nil || len(posts) != 0 {
			t.Errorf("Query(%q) = %v, want empty slice", q, posts)
		}
	}
	if store.calls != 0 {
		t.Errorf("store called %d times for short queries", store.calls)
	}
}

func TestSearchStoreFailure(t *testing.T) {
	store := &failingPostStore{}
	svc := NewSearchService(store, content.NewRenderer())

	if _, err := svc.Query(context.Background(), "golang"); err == nil {
		t.Error("Query hid the store failure")
	}
	if got := svc.Search(context.Background(), "golang"); got == nil || len(got) != 0 {
		t.Errorf("Search = %v, want empty slice", got)
	}
	if store.calls != 2 {
		t.Errorf("store calls = %d, want 2", store.calls)
	}
}

func TestSearchMatches(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.createPost(t, PostInput{Title: "Absolute Beginners", Content: "primeiros passos", Published: true})
	env.createPost(t, PostInput{Title: "Frete grátis", Description: "Como oferecer", Content: "texto", Published: true, Tags: []string{"Logística"}})
	env.createPost(t, PostInput{Title: "Rascunho absoluto", Content: "texto"})
	env.createPost(t, PostInput{Title: "Água Viva", Content: "texto", Published: true})
	env.createPost(t, PostInput{Title: "ÉTICA NO VAREJO", Content: "texto", Published: true})

	tests := []struct {
		query string
		want  []string
	}{
		{"ab", []string{"absolute-beginners"}},
		{"  BEGINNERS ", []string{"absolute-beginners"}},
		{"passos", []string{"absolute-beginners"}},
		{"oferecer", []string{"frete-gratis"}},
		{"logística", []string{"frete-gratis"}},
		{"LOGÍSTICA", []string{"frete-gratis"}},
		{"Água", []string{"agua-viva"}},
		{"água", []string{"agua-viva"}},
		{"ética", []string{"etica-no-varejo"}},
		{"ÉTICA", []string{"etica-no-varejo"}},
		{"nada disso", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			posts := env.search.Search(ctx, tt.query)
			if len(posts) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d posts, want %d", tt.query, len(posts), len(tt.want))
			}
			for i, p := range posts {
				if p.Slug != tt.want[i] {
					t.Errorf("result %d = %q, want %q", i, p.Slug, tt.want[i])
				}
			}
		})
	}
}

func TestMeetsThreshold(t *testing.T) {
	tests := map[string]bool{
		"":     false,
		" a ":  false,
		"ab":   true,
		"ão":   true,
		" go ": true,
	}
	for q, want := range tests {
		if got := MeetsThreshold(q); got != want {
			t.Errorf("MeetsThreshold(%q) = %v, want %v", q, got, want)
		}
	}
}
