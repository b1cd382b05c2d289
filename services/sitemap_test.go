package services

import (
	"context"
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestSitemapBuild(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cat, err := env.categories.Create(ctx, CategoryInput{Name: "Dicas", Slug: "dicas"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	env.createPost(t, PostInput{Title: "Publicado", Content: "x", Published: true, CategoryID: &cat.ID, Tags: []string{"Frete Grátis"}})
	env.createPost(t, PostInput{Title: "Rascunho", Content: "x", Tags: []string{"segredo"}})

	svc := NewSitemapService(env.db.PostRepo(), env.db.TagRepo(), env.db.CategoryRepo(), "https://blog.example.com/")
	svc.now = func() time.Time { return fixedNow }

	set, err := svc.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	locs := map[string]SitemapURL{}
	for _, u := range set.URLs {
		locs[u.Loc] = u
	}

	for _, want := range []string{
		"https://blog.example.com",
		"https://blog.example.com/blog",
		"https://blog.example.com/sobre",
		"https://blog.example.com/blog/publicado",
		"https://blog.example.com/blog/tag/frete-gratis",
		"https://blog.example.com/blog/categoria/dicas",
	} {
		if _, ok := locs[want]; !ok {
			t.Errorf("sitemap missing %s", want)
		}
	}
	for _, unwanted := range []string{
		"https://blog.example.com/blog/rascunho",
		"https://blog.example.com/blog/tag/segredo",
	} {
		if _, ok := locs[unwanted]; ok {
			t.Errorf("sitemap lists unpublished %s", unwanted)
		}
	}

	post := locs["https://blog.example.com/blog/publicado"]
	if post.LastMod != "2024-06-01" || post.ChangeFreq != "weekly" || post.Priority != 0.8 {
		t.Errorf("post entry = %+v", post)
	}

	out, err := xml.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.HasPrefix(string(out), `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Errorf("xml = %s", out)
	}
}

func TestRobots(t *testing.T) {
	svc := NewSitemapService(nil, nil, nil, "https://blog.example.com")
	robots := svc.Robots()

	for _, want := range []string{
		"User-agent: *\nAllow: /\nDisallow: /admin/\n",
		"User-agent: Googlebot\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n",
		"Sitemap: https://blog.example.com/sitemap.xml\n",
	} {
		if !strings.Contains(robots, want) {
			t.Errorf("robots.txt missing %q:\n%s", want, robots)
		}
	}
}
