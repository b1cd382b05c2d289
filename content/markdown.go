package content

import (
	"bytes"
	"html"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const maxSnippetLength = 200

// Renderer converts stored markdown into the HTML served on post pages.
// It is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithASTTransformers(
				util.Prioritized(&headingAnchorTransformer{}, 100),
			),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&rawHTMLEscaper{}, 100),
			),
		),
	)

	return &Renderer{md: md}
}

// Render returns the HTML for markdown. Literal HTML in the source is
// escaped, and every heading gets an id and a link to itself.
func (r *Renderer) Render(markdown string) string {
	// heading ids are deduplicated per document
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf, parser.WithContext(ctx)); err != nil {
		return "<p>" + html.EscapeString(markdown) + "</p>"
	}
	return buf.String()
}

// ImageURLs lists the image destinations referenced by markdown, in order
// of appearance and without duplicates.
func (r *Renderer) ImageURLs(markdown string) []string {
	doc := r.md.Parser().Parse(text.NewReader([]byte(markdown)))

	seen := map[string]bool{}
	urls := []string{}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		img, ok := n.(*ast.Image)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := strings.TrimSpace(string(img.Destination))
		if dest != "" && !seen[dest] {
			seen[dest] = true
			urls = append(urls, dest)
		}
		return ast.WalkContinue, nil
	})
	return urls
}

// headingIDs hands out slug ids, suffixing -1, -2... on collisions.
type headingIDs struct {
	used map[string]bool
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: map[string]bool{}}
}

func (s *headingIDs) Generate(value []byte, kind ast.NodeKind) []byte {
	base := NormalizeTag(string(value))
	if base == "" {
		base = "heading"
	}

	id := base
	for i := 1; s.used[id]; i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	s.used[id] = true
	return []byte(id)
}

func (s *headingIDs) Put(value []byte) {
	s.used[string(value)] = true
}

// headingAnchorTransformer moves the contents of each heading into a link
// pointing at the heading's own id.
type headingAnchorTransformer struct{}

func (t *headingAnchorTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	var headings []*ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			headings = append(headings, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	for _, h := range headings {
		wrapHeading(h)
	}
}

func wrapHeading(h *ast.Heading) {
	if !h.HasChildren() || containsLink(h) {
		return
	}
	attr, ok := h.AttributeString("id")
	if !ok {
		return
	}
	id, ok := attr.([]byte)
	if !ok || len(id) == 0 {
		return
	}

	link := ast.NewLink()
	link.Destination = append([]byte("#"), id...)
	for c := h.FirstChild(); c != nil; {
		next := c.NextSibling()
		h.RemoveChild(h, c)
		link.AppendChild(link, c)
		c = next
	}
	h.AppendChild(h, link)
}

// anchors cannot nest
func containsLink(n ast.Node) bool {
	found := false
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c.(type) {
		case *ast.Link, *ast.AutoLink:
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return found
}

// rawHTMLEscaper prints inline and block HTML from the source as text.
type rawHTMLEscaper struct{}

func (r *rawHTMLEscaper) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *rawHTMLEscaper) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		_, _ = w.WriteString("<p>")
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			_, _ = w.Write(util.EscapeHTML(line.Value(source)))
		}
		return ast.WalkContinue, nil
	}

	if n.HasClosure() {
		closure := n.ClosureLine
		_, _ = w.Write(util.EscapeHTML(closure.Value(source)))
	}
	_, _ = w.WriteString("</p>\n")
	return ast.WalkContinue, nil
}

func (r *rawHTMLEscaper) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	n := node.(*ast.RawHTML)
	for i := 0; i < n.Segments.Len(); i++ {
		segment := n.Segments.At(i)
		_, _ = w.Write(util.EscapeHTML(segment.Value(source)))
	}
	return ast.WalkSkipChildren, nil
}

// Snippet returns the first paragraph of markdown as plain text, cut at
// maxSnippetLength runes. Used when a post is saved without a description.
func Snippet(markdown string) string {
	var paragraph []string
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") || isBlockMarker(trimmed) {
			if len(paragraph) > 0 {
				break
			}
			continue
		}
		paragraph = append(paragraph, trimmed)
	}

	snippet := strings.Join(paragraph, " ")
	if r := []rune(snippet); len(r) > maxSnippetLength {
		snippet = strings.TrimSpace(string(r[:maxSnippetLength])) + "..."
	}
	return snippet
}

func isBlockMarker(line string) bool {
	for _, prefix := range []string{"```", "---", "***", "- ", "* ", "+ ", "|", ">", "!["} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}
