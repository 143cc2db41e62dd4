// Package utils contains general helper functions used across the dirsnap tool.
package utils

import (
	"path/filepath"
)

const (
	// IgnoreFileName is the name of the root-level ignore file read by the rule engine.
	IgnoreFileName = ".gitignore"
	// GitDirectoryName is the name of the version-control metadata directory.
	GitDirectoryName = ".git"

	// LocalConfigFileName is the per-project configuration file name.
	LocalConfigFileName = ".dirsnap.yaml"
	// GlobalConfigDirectoryName is the configuration directory under the user home.
	GlobalConfigDirectoryName = ".dirsnap"
	// GlobalConfigFileName is the configuration file inside the global directory.
	GlobalConfigFileName = "config.yaml"
)

// DeduplicatePatterns removes blank and duplicate patterns from a slice while
// preserving order. The first occurrence of each unique pattern is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the slash-separated path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	absoluteRoot, absoluteRootError := filepath.Abs(root)
	if absoluteRootError != nil {
		return cleanPath
	}
	cleanAbsoluteRoot := filepath.Clean(absoluteRoot)

	if cleanPath == cleanAbsoluteRoot {
		return "."
	}

	relativePath, relativeError := filepath.Rel(cleanAbsoluteRoot, cleanPath)
	if relativeError != nil {
		return cleanPath
	}
	return filepath.ToSlash(relativePath)
}
