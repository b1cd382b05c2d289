package content

import (
	"reflect"
	"testing"
)

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"punctuation dropped", "Vender na Shopee!", "vender-na-shopee"},
		{"accents stripped", "São Paulo", "sao-paulo"},
		{"mixed accents", "Programação Orientada à Objetos", "programacao-orientada-a-objetos"},
		{"surrounding space", "  Go  ", "go"},
		{"hyphen runs", "go -- tips", "go-tips"},
		{"leading hyphens", "--react--", "react"},
		{"tabs and newlines", "a\tb\nc", "a-b-c"},
		{"no-break space", "a\u00a0b", "a-b"},
		{"ideographic space", "a\u3000b", "a-b"},
		{"narrow no-break space", "São\u202fPaulo", "sao-paulo"},
		{"underscore kept", "snake_case", "snake_case"},
		{"digits kept", "Next.js 14", "nextjs-14"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeTag(tt.in); got != tt.want {
				t.Errorf("NormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeTagIdempotent(t *testing.T) {
	inputs := []string{
		"Vender na Shopee!",
		"São Paulo",
		"  --Ünïcödé  Tågs--  ",
		"İstanbul",
		"a - - b",
		"日本語 tag",
		"already-normal",
		"MiXeD_Case 42",
		"",
	}

	for _, in := range inputs {
		once := NormalizeTag(in)
		if twice := NormalizeTag(once); twice != once {
			t.Errorf("NormalizeTag not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestDenormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"vender-na-shopee", "Vender Na Shopee"},
		{"sao-paulo", "Sao Paulo"},
		{"go", "Go"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := DenormalizeTag(tt.in); got != tt.want {
			t.Errorf("DenormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"array", `["Go", "Web Dev"]`, []string{"Go", "Web Dev"}},
		{"duplicates by slug", `["Go", "go", " GO "]`, []string{"Go"}},
		{"blank entries", `["", "  ", "SQL"]`, []string{"SQL"}},
		{"malformed", `["Go",`, []string{}},
		{"not an array", `"Go"`, []string{}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeTags(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DecodeTags(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}
