package chunker

import (
	"strings"
	"unicode/utf8"
)

// Splitter splits plain text into overlapping passages sized for independent
// embedding. Sizes are measured in runes, not bytes.
type Splitter struct {
	chunkSize int
	overlap   int
}

// New creates a Splitter with the given passage size and overlap (in runes).
func New(chunkSize, overlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &Splitter{
		chunkSize: chunkSize,
		overlap:   overlap,
	}
}

// Split splits text into passages of at most chunkSize runes with overlap
// runes shared between consecutive passages. Split points prefer larger
// boundaries first: paragraph break, then line break, then sentence end, then
// word boundary, falling back to a hard cut. Whitespace-only input yields no
// passages; passages are never empty.
func (s *Splitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	runes := []rune(text)
	var passages []string
	start := 0

	for start < len(runes) {
		end := start + s.chunkSize
		if end >= len(runes) {
			if p := strings.TrimSpace(string(runes[start:])); p != "" {
				passages = append(passages, p)
			}
			break
		}

		splitPoint := start + s.findSplit(string(runes[start:end]))
		if p := strings.TrimSpace(string(runes[start:splitPoint])); p != "" {
			passages = append(passages, p)
		}

		// Step back by the overlap, but always make forward progress.
		next := splitPoint - s.overlap
		if next <= start {
			next = splitPoint
		}
		start = next
	}

	return passages
}

// findSplit returns the rune offset within window at which to cut, preferring
// paragraph, newline, sentence, and word boundaries in that order. The
// returned offset is always positive so the caller makes progress.
func (s *Splitter) findSplit(window string) int {
	if i := strings.LastIndex(window, "\n\n"); i > 0 {
		return utf8.RuneCountInString(window[:i+2])
	}
	if i := strings.LastIndex(window, "\n"); i > 0 {
		return utf8.RuneCountInString(window[:i+1])
	}
	if i := strings.LastIndex(window, ". "); i > 0 {
		return utf8.RuneCountInString(window[:i+2])
	}
	if i := strings.LastIndex(window, " "); i > 0 {
		return utf8.RuneCountInString(window[:i+1])
	}
	return utf8.RuneCountInString(window)
}
