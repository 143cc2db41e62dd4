package utils_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dirsnap/dirsnap/internal/utils"
)

func TestDeduplicatePatterns(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{name: "empty", input: nil, expected: nil},
		{name: "unique", input: []string{"a", "b"}, expected: []string{"a", "b"}},
		{name: "duplicates keep first", input: []string{"a", "b", "a", "c", "b"}, expected: []string{"a", "b", "c"}},
		{name: "blank entries dropped", input: []string{"", "a", ""}, expected: []string{"a"}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.DeduplicatePatterns(testCase.input)
			if len(result) != len(testCase.expected) {
				t.Fatalf("expected %v, got %v", testCase.expected, result)
			}
			for index := range result {
				if result[index] != testCase.expected[index] {
					t.Fatalf("expected %v, got %v", testCase.expected, result)
				}
			}
		})
	}
}

func TestRelativePathOrSelf(t *testing.T) {
	rootPath := t.TempDir()
	testCases := []struct {
		name     string
		fullPath string
		expected string
	}{
		{name: "root itself", fullPath: rootPath, expected: "."},
		{name: "nested file", fullPath: filepath.Join(rootPath, "pkg", "main.go"), expected: "pkg/main.go"},
		{name: "direct child", fullPath: filepath.Join(rootPath, "README.md"), expected: "README.md"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.RelativePathOrSelf(testCase.fullPath, rootPath)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	location := time.Now().Location()
	testCases := []struct {
		name     string
		value    time.Time
		expected string
	}{
		{name: "zero time", value: time.Time{}, expected: ""},
		{name: "local timestamp", value: time.Date(2025, time.March, 7, 9, 30, 0, 0, location), expected: "2025-03-07 09:30"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatTimestamp(testCase.value)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}
