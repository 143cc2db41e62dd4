package tokenizer_test

import (
	"testing"
	"unicode/utf8"

	"github.com/dirsnap/dirsnap/internal/tokenizer"
)

// runeCounter is a deterministic stand-in that charges one token per rune.
type runeCounter struct{}

func (runeCounter) Name() string { return "rune" }

func (runeCounter) CountString(input string) (int, error) {
	return utf8.RuneCountInString(input), nil
}

func TestCountString(t *testing.T) {
	result, countError := tokenizer.CountString(runeCounter{}, "five!")
	if countError != nil {
		t.Fatalf("counting: %v", countError)
	}
	if !result.Counted || result.Tokens != 5 {
		t.Fatalf("expected 5 counted tokens, got %+v", result)
	}
}

func TestCountStringSkipsInvalidUTF8(t *testing.T) {
	result, countError := tokenizer.CountString(runeCounter{}, string([]byte{0xFF, 0xFE}))
	if countError != nil {
		t.Fatalf("counting: %v", countError)
	}
	if result.Counted {
		t.Fatal("expected invalid UTF-8 content to be skipped")
	}
}

func TestCountStringNilCounter(t *testing.T) {
	if _, countError := tokenizer.CountString(nil, "text"); countError == nil {
		t.Fatal("expected an error for a nil counter")
	}
}
