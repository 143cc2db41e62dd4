// Package ignore compiles layered gitignore-style patterns into a single
// path-matching predicate used to decide which entries a snapshot captures.
package ignore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/dirsnap/dirsnap/internal/utils"
)

const (
	// gitDirectoryPattern permanently excludes version-control metadata.
	gitDirectoryPattern = utils.GitDirectoryName + "/"
	// ignoreFileReadFailedFormat reports an ignore file that exists but cannot be read.
	ignoreFileReadFailedFormat = "reading %s from %s: %w"
)

// Engine is the compiled ignore rule set for one snapshot root. Rules are
// layered in precedence order (built-in exclusion, root ignore file, caller
// extras) and the verdict for a path is the polarity of the last matching
// rule, so later layers may re-include paths excluded by earlier ones. An
// Engine is immutable once constructed.
type Engine struct {
	matcher *gitignore.GitIgnore
}

// NewEngine compiles the rule set for rootPath. The root's ignore file is
// optional; an ignore file that exists but cannot be read is a construction
// error, since silently treating it as empty would change what the snapshot
// captures.
func NewEngine(rootPath string, extraPatterns []string) (*Engine, error) {
	patternLines := []string{gitDirectoryPattern}

	ignoreFilePath := filepath.Join(rootPath, utils.IgnoreFileName)
	fileLines, readError := readPatternLines(ignoreFilePath)
	if readError != nil {
		return nil, fmt.Errorf(ignoreFileReadFailedFormat, utils.IgnoreFileName, rootPath, readError)
	}
	patternLines = append(patternLines, fileLines...)

	for _, pattern := range extraPatterns {
		trimmedPattern := strings.TrimSpace(pattern)
		if trimmedPattern == "" {
			continue
		}
		patternLines = append(patternLines, trimmedPattern)
	}

	return &Engine{matcher: gitignore.CompileIgnoreLines(patternLines...)}, nil
}

// IsIgnored reports whether the slash-separated root-relative path is
// excluded. Directory candidates are additionally tested with a trailing
// slash so directory-only patterns apply to them. The root itself is never
// ignored.
func (engine *Engine) IsIgnored(relativePath string, isDirectory bool) bool {
	if relativePath == "" || relativePath == "." {
		return false
	}
	if isDirectory {
		return engine.matcher.MatchesPath(relativePath + "/")
	}
	return engine.matcher.MatchesPath(relativePath)
}

// readPatternLines returns the raw lines of the ignore file at the given
// path, or nil when the file does not exist. Comment and blank lines are
// left for the pattern compiler to discard so escape rules stay intact.
//
// #nosec G304
func readPatternLines(ignoreFilePath string) ([]string, error) {
	fileHandle, openError := os.Open(ignoreFilePath)
	if openError != nil {
		if os.IsNotExist(openError) {
			return nil, nil
		}
		return nil, openError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var patternLines []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		patternLines = append(patternLines, scanner.Text())
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return patternLines, nil
}
