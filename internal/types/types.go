// Package types defines every cross-package data structure used by the dirsnap CLI.
package types

const (
	// EntryKindDirectory marks a filesystem entry that is a directory.
	EntryKindDirectory = "directory"
	// EntryKindText marks a file whose content is rendered as decoded text.
	EntryKindText = "text"
	// EntryKindImage marks a file recognized by its raster or vector image extension.
	EntryKindImage = "image"
	// EntryKindBinary marks a file whose content is opaque and never displayed.
	EntryKindBinary = "binary"
)

const (
	// FailureBinary reports that the full-content probe judged the bytes binary.
	FailureBinary = "binary"
	// FailureControlChars reports that decoded text exceeded the control-character ratio limit.
	FailureControlChars = "control-characters"
	// FailureReadError reports that the file could not be read or decoded.
	FailureReadError = "read-error"
)

// Entry is one filesystem object encountered during traversal, relative to the
// snapshot root. Directories never appear in the flat file list, only in the
// tree lines. MimeType is populated for image and binary entries, where it
// labels content the renderer embeds or omits.
type Entry struct {
	AbsolutePath string
	RelativePath string
	Kind         string
	MimeType     string
}

// ContentFailure is the terminal reason a text-classified file produced no
// displayable content.
type ContentFailure struct {
	Reason string
	Detail string
}

// DecodedContent is the result of attempting to read a text entry. Text and
// Failure are mutually exclusive; Encoding carries the detected or assumed
// charset label for display even on success.
type DecodedContent struct {
	Text     string
	Encoding string
	Failure  *ContentFailure
}

// Policy bundles the truncation and screening constants applied while the
// snapshot model is assembled. The default values mirror the reference
// behavior and are awaiting product-owner confirmation; override them through
// flags or configuration rather than editing call sites.
type Policy struct {
	// MaxFileLines caps how many leading lines of a text file are kept.
	MaxFileLines int
	// MaxLineRunes caps the rune length of every kept line.
	MaxLineRunes int
	// ControlRatioLimit is the decoded control-character ratio above which
	// content is discarded as not really text.
	ControlRatioLimit float64
}

const (
	defaultMaxFileLines      = 500
	defaultMaxLineRunes      = 300
	defaultControlRatioLimit = 0.10
)

// DefaultPolicy returns the standard truncation and screening constants.
func DefaultPolicy() Policy {
	return Policy{
		MaxFileLines:      defaultMaxFileLines,
		MaxLineRunes:      defaultMaxLineRunes,
		ControlRatioLimit: defaultControlRatioLimit,
	}
}

// SnapshotOptions carries the caller-supplied generation options. Title and
// FontSize pass through to the renderer untouched.
type SnapshotOptions struct {
	Recursive           bool
	ExtraIgnorePatterns []string
	Title               string
	FontSize            int
}

// FileSection is one rendered file of the snapshot document. Exactly one of
// the content forms is populated: Lines for text, Notice for binary or failed
// entries, and AbsolutePath alone for images (raw bytes stay with the
// renderer).
type FileSection struct {
	RelativePath string
	AbsolutePath string
	Kind         string
	Lines        []string
	OmittedLines int
	Encoding     string
	Notice       string
	MimeType     string
	SizeBytes    int64
	LastModified string
}

// KindCounts aggregates how many files of each kind the snapshot covers.
type KindCounts struct {
	Text   int
	Image  int
	Binary int
}

// Total returns the number of files across all kinds.
func (counts KindCounts) Total() int {
	return counts.Text + counts.Image + counts.Binary
}

// TokenStats summarizes optional token counting over the text sections.
type TokenStats struct {
	Model        string
	Tokens       int
	CountedFiles int
}

// SnapshotDocument is the final renderer-agnostic model: the tree lines, the
// ordered per-file sections, and the aggregate counts. The builder retains no
// reference once the document is returned.
type SnapshotDocument struct {
	RootPath   string
	Options    SnapshotOptions
	Counts     KindCounts
	TreeLines  []string
	Sections   []FileSection
	TokenStats *TokenStats
}
