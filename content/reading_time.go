package content

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

const (
	WordsPerMinute   = 150
	MinutesPerImage  = 0.2
	MinutesPerCode   = 1.0
	minReadingMinute = 1
)

var (
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
	imgTag       = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	preTag       = regexp.MustCompile(`(?i)<pre\b[^>]*>`)
	headingTag   = regexp.MustCompile(`(?i)<h[1-6]\b[^>]*>`)
	paragraphTag = regexp.MustCompile(`(?i)<p\b[^>]*>`)
)

// ReadingTime is the estimated time needed to read a post.
type ReadingTime struct {
	Minutes int    `json:"minutes"`
	Text    string `json:"text"`
}

// Stats breaks down what went into a reading time estimate.
type Stats struct {
	Words       int         `json:"words"`
	Characters  int         `json:"characters"`
	Paragraphs  int         `json:"paragraphs"`
	Images      int         `json:"images"`
	CodeBlocks  int         `json:"codeBlocks"`
	Headings    int         `json:"headings"`
	ReadingTime ReadingTime `json:"readingTime"`
}

// EstimateReadingTime estimates how long the rendered HTML takes to read.
// Every input, including the empty string, yields at least one minute.
func EstimateReadingTime(renderedHTML string) ReadingTime {
	return ReadingStats(renderedHTML).ReadingTime
}

// ReadingStats counts words, media and structure in rendered HTML and
// derives the reading time from them.
func ReadingStats(renderedHTML string) Stats {
	text := htmlTag.ReplaceAllString(renderedHTML, " ")
	words := len(strings.Fields(text))

	stats := Stats{
		Words:      words,
		Characters: len([]rune(strings.Join(strings.Fields(text), " "))),
		Images:     len(imgTag.FindAllStringIndex(renderedHTML, -1)),
		CodeBlocks: len(preTag.FindAllStringIndex(renderedHTML, -1)),
		Headings:   len(headingTag.FindAllStringIndex(renderedHTML, -1)),
		Paragraphs: len(paragraphTag.FindAllStringIndex(renderedHTML, -1)),
	}

	total := float64(words)/WordsPerMinute +
		float64(stats.Images)*MinutesPerImage +
		float64(stats.CodeBlocks)*MinutesPerCode

	minutes := int(math.Ceil(total))
	if minutes < minReadingMinute {
		minutes = minReadingMinute
	}
	stats.ReadingTime = ReadingTime{Minutes: minutes, Text: FormatReadingTime(minutes)}
	return stats
}

// FormatReadingTime renders a minute count the way post headers display it.
func FormatReadingTime(minutes int) string {
	switch {
	case minutes <= 1:
		return "1 min de leitura"
	case minutes < 60:
		return fmt.Sprintf("%d min de leitura", minutes)
	}

	hours := minutes / 60
	rest := minutes % 60
	if rest == 0 {
		return fmt.Sprintf("%dh de leitura", hours)
	}
	return fmt.Sprintf("%dh %dmin de leitura", hours, rest)
}
