package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/bolhadev/blog-backend/database"
	"github.com/bolhadev/blog-backend/models"
	"golang.org/x/sync/errgroup"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is one <url> entry of sitemap.xml.
type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod,omitempty"`
	ChangeFreq string  `xml:"changefreq,omitempty"`
	Priority   float64 `xml:"priority,omitempty"`
}

type URLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapService lists the public pages of the site for crawlers.
type SitemapService struct {
	posts      PostStore
	tags       TagStore
	categories CategoryStore
	baseURL    string
	now        func() time.Time
}

func NewSitemapService(posts PostStore, tags TagStore, categories CategoryStore, baseURL string) *SitemapService {
	return &SitemapService{
		posts:      posts,
		tags:       tags,
		categories: categories,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// Build gathers posts, tags and categories concurrently and returns the url set.
func (s *SitemapService) Build(ctx context.Context) (*URLSet, error) {
	var (
		posts      []models.Post
		tags       []database.TagCount
		categories []models.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		posts, err = s.posts.List(gctx, database.PostQuery{PublishedOnly: true})
		return err
	})
	g.Go(func() (err error) {
		tags, err = s.tags.ListPublished(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categories.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := s.now().UTC().Format(time.DateOnly)
	set := &URLSet{
		Xmlns: sitemapNamespace,
		URLs: []SitemapURL{
			{Loc: s.baseURL, LastMod: today, ChangeFreq: "daily", Priority: 1},
			{Loc: s.baseURL + "/blog", LastMod: today, ChangeFreq: "daily", Priority: 0.9},
			{Loc: s.baseURL + "/sobre", LastMod: today, ChangeFreq: "monthly", Priority: 0.6},
		},
	}

	for _, p := range posts {
		lastMod := p.CreatedAt
		if p.PublishedAt != nil {
			lastMod = *p.PublishedAt
		}
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        s.baseURL + "/blog/" + p.Slug,
			LastMod:    lastMod.UTC().Format(time.DateOnly),
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}
	for _, t := range tags {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        s.baseURL + "/blog/tag/" + t.Slug,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   0.5,
		})
	}
	for _, c := range categories {
		set.URLs = append(set.URLs, SitemapURL{
			Loc:        s.baseURL + "/blog/categoria/" + c.Slug,
			LastMod:    today,
			ChangeFreq: "weekly",
			Priority:   0.6,
		})
	}
	return set, nil
}

// Robots returns robots.txt.
func (s *SitemapService) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\nDisallow: /admin/\nDisallow: /api/auth/\n\n")
	b.WriteString("User-agent: Googlebot\nAllow: /\nDisallow: /admin/\nDisallow: /api/\n\n")
	fmt.Fprintf(&b, "Host: %s\nSitemap: %s/sitemap.xml\n", s.baseURL, s.baseURL)
	return b.String()
}
