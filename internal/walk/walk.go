// Package walk traverses a directory tree, applying ignore rules and content
// classification to produce a flat file list and a rendered tree view.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dirsnap/dirsnap/internal/classify"
	"github.com/dirsnap/dirsnap/internal/ignore"
	"github.com/dirsnap/dirsnap/internal/types"
	"github.com/dirsnap/dirsnap/internal/utils"
)

const (
	// treeBranchConnector prefixes every sibling except the last at a level.
	treeBranchConnector = "├── "
	// treeLastConnector prefixes the final sibling at a level.
	treeLastConnector = "└── "
	// treeBranchPadding continues a parent branch through deeper levels.
	treeBranchPadding = "│   "
	// treeLastPadding aligns children under a final sibling.
	treeLastPadding = "    "
	// directorySuffix marks directory names in tree lines.
	directorySuffix = "/"
	// unreadableDirectorySuffix marks a directory whose listing failed mid-walk.
	unreadableDirectorySuffix = " [error: cannot read directory]"

	// warningSkipSubdirFormat is used when a subdirectory cannot be listed.
	warningSkipSubdirFormat = "Warning: Skipping subdirectory %s due to error: %v\n"
	// warningProbeFailedFormat is used when content probing fails for a file.
	warningProbeFailedFormat = "Warning: unable to probe %s: %v\n"

	// errorAbsolutePathFormat is used when the absolute path cannot be determined.
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	// errorStatRootFormat is used when the root path cannot be inspected.
	errorStatRootFormat = "inspecting root %s: %w"
	// errorNotDirectoryFormat is used when the root path is not a directory.
	errorNotDirectoryFormat = "root path %s is not a directory"
	// errorReadRootFormat is used when the root directory cannot be listed.
	errorReadRootFormat = "reading directory %s: %w"
)

// Walker enumerates a directory tree. Every Scan call feeds the file list and
// the tree lines from the same visible entries, in the same order, so the two
// views never disagree about what the snapshot contains.
type Walker struct {
	engine     *ignore.Engine
	classifier *classify.Classifier
	collator   *collate.Collator
}

// NewWalker returns a Walker using the provided ignore rules and classifier.
// Name ordering uses case-insensitive collation of the unspecified language,
// which is reproducible across runs and machines.
func NewWalker(engine *ignore.Engine, classifier *classify.Classifier) *Walker {
	return &Walker{
		engine:     engine,
		classifier: classifier,
		collator:   collate.New(language.Und, collate.IgnoreCase),
	}
}

// treeNode is one visible entry, positioned in traversal order.
type treeNode struct {
	name         string
	absolutePath string
	relativePath string
	kind         string
	mimeType     string
	listFailed   bool
	children     []*treeNode
}

// Scan enumerates rootPath one directory level at a time and returns the
// classified file entries plus the rendered tree lines. With recursive false,
// subdirectories appear in the tree at depth zero but are never descended
// into. A subdirectory that cannot be listed becomes a placeholder tree line
// and a stderr warning while the walk continues; an unreadable root is an
// error.
func (walker *Walker) Scan(rootPath string, recursive bool) ([]types.Entry, []string, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	rootInformation, statError := os.Stat(absoluteRootPath)
	if statError != nil {
		return nil, nil, fmt.Errorf(errorStatRootFormat, rootPath, statError)
	}
	if !rootInformation.IsDir() {
		return nil, nil, fmt.Errorf(errorNotDirectoryFormat, rootPath)
	}

	children, buildError := walker.buildLevel(absoluteRootPath, absoluteRootPath, recursive)
	if buildError != nil {
		return nil, nil, fmt.Errorf(errorReadRootFormat, rootPath, buildError)
	}

	treeLines := renderLevel(children, "", []string{filepath.Base(absoluteRootPath) + directorySuffix})
	entries := collectFiles(children, nil)
	return entries, treeLines, nil
}

// buildLevel lists one directory, drops ignored children, classifies files,
// and recurses into subdirectories when descend is set.
func (walker *Walker) buildLevel(currentDirectoryPath string, rootDirectoryPath string, descend bool) ([]*treeNode, error) {
	directoryEntries, readDirectoryError := os.ReadDir(currentDirectoryPath)
	if readDirectoryError != nil {
		return nil, readDirectoryError
	}

	var nodes []*treeNode
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(currentDirectoryPath, directoryEntry.Name())
		relativeChildPath := utils.RelativePathOrSelf(childPath, rootDirectoryPath)
		isDirectory := directoryEntry.IsDir()
		if walker.engine.IsIgnored(relativeChildPath, isDirectory) {
			continue
		}

		node := &treeNode{
			name:         directoryEntry.Name(),
			absolutePath: childPath,
			relativePath: relativeChildPath,
		}

		if isDirectory {
			node.kind = types.EntryKindDirectory
			if descend {
				childNodes, childError := walker.buildLevel(childPath, rootDirectoryPath, descend)
				if childError != nil {
					fmt.Fprintf(os.Stderr, warningSkipSubdirFormat, childPath, childError)
					node.listFailed = true
				} else {
					node.children = childNodes
				}
			}
		} else {
			kind, classifyError := walker.classifier.Classify(childPath)
			if classifyError != nil {
				fmt.Fprintf(os.Stderr, warningProbeFailedFormat, childPath, classifyError)
			}
			node.kind = kind
			if kind != types.EntryKindText {
				node.mimeType = walker.classifier.DetectMime(childPath)
			}
		}
		nodes = append(nodes, node)
	}

	walker.sortLevel(nodes)
	return nodes, nil
}

// sortLevel orders one directory level: directories first, then files, each
// group collated case-insensitively by name. The sort is stable over the
// lexical order os.ReadDir guarantees, so ties cannot reorder between runs.
func (walker *Walker) sortLevel(nodes []*treeNode) {
	sort.SliceStable(nodes, func(firstIndex, secondIndex int) bool {
		first, second := nodes[firstIndex], nodes[secondIndex]
		firstIsDirectory := first.kind == types.EntryKindDirectory
		secondIsDirectory := second.kind == types.EntryKindDirectory
		if firstIsDirectory != secondIsDirectory {
			return firstIsDirectory
		}
		return walker.collator.CompareString(first.name, second.name) < 0
	})
}

// renderLevel appends one line per node, using branch connectors so the tree
// reads the way tree(1) output does.
func renderLevel(nodes []*treeNode, prefix string, treeLines []string) []string {
	for index, node := range nodes {
		linePrefix, childPrefix := treeLinePrefix(prefix, index == len(nodes)-1)
		label := node.name
		if node.kind == types.EntryKindDirectory {
			label += directorySuffix
			if node.listFailed {
				label += unreadableDirectorySuffix
			}
		}
		treeLines = append(treeLines, linePrefix+label)
		treeLines = renderLevel(node.children, childPrefix, treeLines)
	}
	return treeLines
}

// treeLinePrefix returns the prefix for a node's own line and the prefix its
// children continue with.
func treeLinePrefix(prefix string, isLast bool) (string, string) {
	connector := treeBranchConnector
	childPrefix := prefix + treeBranchPadding
	if isLast {
		connector = treeLastConnector
		childPrefix = prefix + treeLastPadding
	}
	return prefix + connector, childPrefix
}

// collectFiles flattens non-directory nodes into entries, preserving the
// sorted tree order.
func collectFiles(nodes []*treeNode, entries []types.Entry) []types.Entry {
	for _, node := range nodes {
		if node.kind == types.EntryKindDirectory {
			entries = collectFiles(node.children, entries)
			continue
		}
		entries = append(entries, types.Entry{
			AbsolutePath: node.absolutePath,
			RelativePath: node.relativePath,
			Kind:         node.kind,
			MimeType:     node.mimeType,
		})
	}
	return entries
}
