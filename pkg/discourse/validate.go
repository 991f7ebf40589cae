package discourse

import (
	"fmt"
	"strings"

	"github.com/Afolstee/politiscope/pkg/discourse/discourseerr"
)

// MaxWords is the default cap on input size, matching the upstream
// completion budget.
const MaxWords = 4000

// Validate checks that text is non-empty and within the word cap.
// A non-positive maxWords falls back to MaxWords.
func Validate(text string, maxWords int) error {
	if maxWords <= 0 {
		maxWords = MaxWords
	}
	if strings.TrimSpace(text) == "" {
		return discourseerr.ErrEmptyText
	}
	words := WordCount(text)
	if words > maxWords {
		return fmt.Errorf("%w: %d words, maximum %d allowed", discourseerr.ErrTextTooLong, words, maxWords)
	}
	return nil
}

// WordCount counts whitespace-separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// Stats holds the quick stats shown next to the input form.
type Stats struct {
	Words     int `json:"words"`
	Chars     int `json:"chars"`
	Sentences int `json:"sentences"`
}

// TextStats computes word, character and estimated sentence counts.
func TextStats(text string) Stats {
	sentences := 0
	for _, part := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	}) {
		if strings.TrimSpace(part) != "" {
			sentences++
		}
	}
	return Stats{
		Words:     WordCount(text),
		Chars:     len([]rune(text)),
		Sentences: sentences,
	}
}
