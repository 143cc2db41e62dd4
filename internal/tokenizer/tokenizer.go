// Package tokenizer estimates token counts for snapshot text content.
package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	// defaultModel is assumed when the caller names no model.
	defaultModel = "gpt-4o"
	// fallbackEncodingName is used when no encoding is registered for a model.
	fallbackEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model. Models without a
// registered encoding fall back to cl100k_base. The second return value is
// the label to report alongside counts.
func NewCounter(model string) (Counter, string, error) {
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = defaultModel
	}
	lowerModel := strings.ToLower(trimmedModel)

	modelEncoding, encodingError := tiktoken.EncodingForModel(lowerModel)
	if encodingError == nil && modelEncoding != nil {
		return encodingCounter{encoding: modelEncoding, name: lowerModel}, lowerModel, nil
	}
	fallbackEncoding, fallbackError := tiktoken.GetEncoding(fallbackEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: fallbackEncodingName}, fallbackEncodingName, nil
}

// encodingCounter counts with a tiktoken encoding.
type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

// Name returns the encoding or model label.
func (counter encodingCounter) Name() string { return counter.name }

// CountString returns the token count of input.
func (counter encodingCounter) CountString(input string) (int, error) {
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

// CountResult captures the outcome of counting one piece of content.
type CountResult struct {
	Tokens  int
	Counted bool
}

// CountString estimates tokens for decoded text. Content that is not valid
// UTF-8 is skipped rather than estimated wrongly.
func CountString(counter Counter, text string) (CountResult, error) {
	if counter == nil {
		return CountResult{}, errors.New("nil tokenizer counter")
	}
	if !utf8.ValidString(text) {
		return CountResult{Counted: false}, nil
	}
	tokens, countError := counter.CountString(text)
	if countError != nil {
		return CountResult{}, countError
	}
	return CountResult{Tokens: tokens, Counted: true}, nil
}
