// Package snapshot assembles walker output and decoded content into the final
// ordered document model handed to a renderer.
package snapshot

import (
	"fmt"
	"os"
	"strings"

	"github.com/dirsnap/dirsnap/internal/decode"
	"github.com/dirsnap/dirsnap/internal/progress"
	"github.com/dirsnap/dirsnap/internal/tokenizer"
	"github.com/dirsnap/dirsnap/internal/types"
	"github.com/dirsnap/dirsnap/internal/utils"
)

const (
	// binaryNotice marks sections whose bytes are never rendered.
	binaryNotice = "(binary content not displayed)"
	// controlNoticeFormat wraps the control-character screen detail.
	controlNoticeFormat = "(content not displayed: %s)"
	// readErrorNoticeFormat wraps the read failure detail.
	readErrorNoticeFormat = "(cannot read file: %s)"
	// lineTruncationMarker ends every line cut at the length cap.
	lineTruncationMarker = "..."

	// warningTokenCountFormat reports a token estimation failure for one file.
	warningTokenCountFormat = "failed to count tokens for %s: %v"
)

// Builder assembles snapshot documents. The decoder and truncation policy are
// fixed at construction; TokenCounter, TokenModel and Progress are optional
// collaborators the caller sets before Build. A Builder holds no state between
// builds and retains no reference to returned documents.
type Builder struct {
	decoder *decode.Decoder
	policy  types.Policy

	// TokenCounter enables token statistics over decoded text sections.
	TokenCounter tokenizer.Counter
	// TokenModel is the label reported with token statistics.
	TokenModel string
	// Progress receives build events synchronously, in enumeration order.
	Progress progress.Callback
}

// NewBuilder returns a Builder using the provided decoder and policy.
// Non-positive policy fields fall back to the default policy values.
func NewBuilder(decoder *decode.Decoder, policy types.Policy) *Builder {
	defaults := types.DefaultPolicy()
	if policy.MaxFileLines <= 0 {
		policy.MaxFileLines = defaults.MaxFileLines
	}
	if policy.MaxLineRunes <= 0 {
		policy.MaxLineRunes = defaults.MaxLineRunes
	}
	if policy.ControlRatioLimit <= 0 {
		policy.ControlRatioLimit = defaults.ControlRatioLimit
	}
	return &Builder{decoder: decoder, policy: policy}
}

// Build merges the tree lines and per-file results into the document model.
// Files are processed in enumeration order; every per-file failure is
// captured as a visible section notice, so the build always completes.
func (builder *Builder) Build(rootPath string, files []types.Entry, treeLines []string, options types.SnapshotOptions) types.SnapshotDocument {
	builder.emit(progress.Event{Kind: progress.EventKindStart, RootPath: rootPath})

	counts := countKinds(files)
	document := types.SnapshotDocument{
		RootPath:  rootPath,
		Options:   options,
		Counts:    counts,
		TreeLines: treeLines,
		Sections:  make([]types.FileSection, 0, len(files)),
	}

	var tokenStats *types.TokenStats
	if builder.TokenCounter != nil {
		tokenStats = &types.TokenStats{Model: builder.TokenModel}
	}

	for _, entry := range files {
		section, decodedText := builder.buildSection(entry)
		if tokenStats != nil && entry.Kind == types.EntryKindText && decodedText != "" {
			countResult, countError := tokenizer.CountString(builder.TokenCounter, decodedText)
			if countError != nil {
				builder.emit(progress.Event{
					Kind:         progress.EventKindWarning,
					RootPath:     rootPath,
					RelativePath: entry.RelativePath,
					Notice:       fmt.Sprintf(warningTokenCountFormat, entry.RelativePath, countError),
				})
			} else if countResult.Counted {
				tokenStats.Tokens += countResult.Tokens
				tokenStats.CountedFiles++
			}
		}
		document.Sections = append(document.Sections, section)
		builder.emit(progress.Event{
			Kind:         progress.EventKindEntry,
			RootPath:     rootPath,
			RelativePath: entry.RelativePath,
			EntryKind:    entry.Kind,
			Notice:       section.Notice,
		})
	}
	document.TokenStats = tokenStats

	builder.emit(progress.Event{Kind: progress.EventKindSummary, RootPath: rootPath, Counts: &counts})
	builder.emit(progress.Event{Kind: progress.EventKindDone, RootPath: rootPath})
	return document
}

// buildSection renders one file entry. For text entries the full decoded
// content is returned alongside the section so token counting sees the text
// before truncation.
func (builder *Builder) buildSection(entry types.Entry) (types.FileSection, string) {
	section := types.FileSection{
		RelativePath: entry.RelativePath,
		AbsolutePath: entry.AbsolutePath,
		Kind:         entry.Kind,
		MimeType:     entry.MimeType,
	}
	if fileInformation, statError := os.Stat(entry.AbsolutePath); statError == nil {
		section.SizeBytes = fileInformation.Size()
		section.LastModified = utils.FormatTimestamp(fileInformation.ModTime())
	}

	switch entry.Kind {
	case types.EntryKindImage:
		// Raw bytes stay on disk for the renderer to embed.
		return section, ""
	case types.EntryKindBinary:
		section.Notice = binaryNotice
		return section, ""
	}

	decoded := builder.decoder.Read(entry.AbsolutePath)
	section.Encoding = decoded.Encoding
	if decoded.Failure != nil {
		section.Notice = failureNotice(decoded.Failure)
		return section, ""
	}

	lines := splitLines(decoded.Text)
	if len(lines) > builder.policy.MaxFileLines {
		section.OmittedLines = len(lines) - builder.policy.MaxFileLines
		lines = lines[:builder.policy.MaxFileLines]
	}
	for index, line := range lines {
		lines[index] = truncateLine(line, builder.policy.MaxLineRunes)
	}
	section.Lines = lines
	return section, decoded.Text
}

// emit invokes the progress callback when one is set.
func (builder *Builder) emit(event progress.Event) {
	if builder.Progress != nil {
		builder.Progress(event)
	}
}

// countKinds tallies the per-kind counts once over the full file list.
func countKinds(files []types.Entry) types.KindCounts {
	var counts types.KindCounts
	for _, entry := range files {
		switch entry.Kind {
		case types.EntryKindText:
			counts.Text++
		case types.EntryKindImage:
			counts.Image++
		case types.EntryKindBinary:
			counts.Binary++
		}
	}
	return counts
}

// failureNotice converts a terminal decode failure into the section notice.
func failureNotice(failure *types.ContentFailure) string {
	switch failure.Reason {
	case types.FailureBinary:
		return binaryNotice
	case types.FailureControlChars:
		return fmt.Sprintf(controlNoticeFormat, failure.Detail)
	default:
		return fmt.Sprintf(readErrorNoticeFormat, failure.Detail)
	}
}

// splitLines breaks decoded content into display lines. A single trailing
// newline does not open an extra empty line, and carriage returns never reach
// the renderer.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for index, line := range lines {
		lines[index] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// truncateLine cuts a line at the rune cap, marking the cut.
func truncateLine(line string, maxRunes int) string {
	runes := []rune(line)
	if len(runes) <= maxRunes {
		return line
	}
	return string(runes[:maxRunes]) + lineTruncationMarker
}
