package discourse

import (
	"errors"
	"strings"
	"testing"

	"github.com/Afolstee/politiscope/pkg/discourse/discourseerr"
)

func TestValidate(t *testing.T) {
	if err := Validate("A short political statement.", 0); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := Validate("   \n\t ", 0); !errors.Is(err, discourseerr.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}

	long := strings.Repeat("word ", MaxWords+1)
	err := Validate(long, 0)
	if !errors.Is(err, discourseerr.ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", err)
	}
	if !strings.Contains(err.Error(), "4001 words") {
		t.Fatalf("error should carry the word count: %v", err)
	}

	exact := strings.Repeat("word ", MaxWords)
	if err := Validate(exact, 0); err != nil {
		t.Fatalf("exactly %d words should pass: %v", MaxWords, err)
	}

	if err := Validate("one two three", 2); !errors.Is(err, discourseerr.ErrTextTooLong) {
		t.Fatalf("custom limit ignored: %v", err)
	}
}

func TestTextStats(t *testing.T) {
	stats := TextStats("We choose hope. We choose change! Will we deliver?")
	if stats.Words != 9 {
		t.Fatalf("words = %d, want 9", stats.Words)
	}
	if stats.Sentences != 3 {
		t.Fatalf("sentences = %d, want 3", stats.Sentences)
	}
	if stats.Chars != 50 {
		t.Fatalf("chars = %d, want 50", stats.Chars)
	}
}
