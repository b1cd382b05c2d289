package content

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// \s is ASCII-only in RE2, so Unicode space separators are listed too
	nonSlugChars = regexp.MustCompile(`[^\w\s\p{Zs}-]`)
	whitespace   = regexp.MustCompile(`[\s\p{Zs}]+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// NormalizeTag canonicalizes a free-text tag into the URL-safe key used for
// tag pages and grouping.
//
// Examples:
//   - "Vender na Shopee!" -> "vender-na-shopee"
//   - "São Paulo"         -> "sao-paulo"
//   - "  Go -- Tips  "    -> "go-tips"
//
// The result is idempotent: NormalizeTag(NormalizeTag(s)) == NormalizeTag(s).
func NormalizeTag(tag string) string {
	// transformers carry state, so the chain is built per call
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	s, _, err := transform.String(stripMarks, tag)
	if err != nil {
		s = tag
	}

	s = strings.ToLower(s)
	s = nonSlugChars.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// DenormalizeTag turns a tag slug back into something displayable by
// upper-casing the first letter of each hyphen-separated word. It is lossy:
// "sao-paulo" becomes "Sao Paulo", not "São Paulo".
func DenormalizeTag(slug string) string {
	words := strings.Split(slug, "-")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if r == utf8.RuneError {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// DecodeTags parses a tag list stored or sent as a JSON-encoded array.
// Malformed input yields an empty list.
func DecodeTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return []string{}
	}
	return CleanTags(tags)
}

// CleanTags trims each tag, drops empty ones and removes entries that
// normalize to the same slug, keeping the first spelling seen.
func CleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		slug := NormalizeTag(t)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		cleaned = append(cleaned, t)
	}
	return cleaned
}
