package content

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

var h1ID = regexp.MustCompile(`<h1 id="([^"]+)">`)

func TestRenderHeadingID(t *testing.T) {
	r := NewRenderer()

	first := r.Render("# Hello")
	m := h1ID.FindStringSubmatch(first)
	if m == nil {
		t.Fatalf("Render(%q) = %q, want an <h1> with an id", "# Hello", first)
	}
	if m[1] != "hello" {
		t.Errorf("heading id = %q, want %q", m[1], "hello")
	}

	if second := r.Render("# Hello"); second != first {
		t.Errorf("Render is not deterministic: %q then %q", first, second)
	}
}

func TestRenderHeadingSelfLink(t *testing.T) {
	got := NewRenderer().Render("## Vender na Shopee")
	want := `<h2 id="vender-na-shopee"><a href="#vender-na-shopee">Vender na Shopee</a></h2>`
	if !strings.Contains(got, want) {
		t.Errorf("Render() = %q, want it to contain %q", got, want)
	}
}

func TestRenderHeadingCollisions(t *testing.T) {
	got := NewRenderer().Render("# Setup\n\n## Setup\n\n### Setup\n")
	for _, id := range []string{`id="setup"`, `id="setup-1"`, `id="setup-2"`} {
		if !strings.Contains(got, id) {
			t.Errorf("Render() = %q, missing %s", got, id)
		}
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	tests := []struct {
		name string
		md   string
		bad  string
	}{
		{"inline", "Hello <script>alert(1)</script> world", "<script>"},
		{"block", "<div onclick=\"x()\">\nhi\n</div>\n", "<div"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRenderer().Render(tt.md)
			if strings.Contains(got, tt.bad) {
				t.Errorf("Render(%q) = %q, contains raw %q", tt.md, got, tt.bad)
			}
			if !strings.Contains(got, "&lt;") {
				t.Errorf("Render(%q) = %q, want escaped markup", tt.md, got)
			}
		})
	}
}

func TestRenderGFM(t *testing.T) {
	md := "| a | b |\n|---|---|\n| 1 | 2 |\n\n~~old~~\n\n- [x] done\n\nhttps://example.com\n"
	got := NewRenderer().Render(md)

	for _, want := range []string{"<table>", "<del>old</del>", `type="checkbox"`, `<a href="https://example.com">`} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() = %q, missing %q", got, want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := NewRenderer().Render(""); got != "" {
		t.Errorf("Render(\"\") = %q, want empty", got)
	}
}

func TestImageURLs(t *testing.T) {
	md := "![a](https://cdn/a.png)\n\ntext ![b](https://cdn/b.png \"B\") and ![again](https://cdn/a.png)\n"
	got := NewRenderer().ImageURLs(md)
	want := []string{"https://cdn/a.png", "https://cdn/b.png"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ImageURLs() = %v, want %v", got, want)
	}
}

func TestSnippet(t *testing.T) {
	tests := []struct {
		name string
		md   string
		want string
	}{
		{"first paragraph", "# Title\n\nFirst line\nsecond line\n\nNext paragraph", "First line second line"},
		{"skips list", "- item\n\nBody", "Body"},
		{"empty", "", ""},
		{"truncated", strings.Repeat("a", 250), strings.Repeat("a", 200) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Snippet(tt.md); got != tt.want {
				t.Errorf("Snippet() = %q, want %q", got, tt.want)
			}
		})
	}
}
