package snapshot_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dirsnap/dirsnap/internal/decode"
	"github.com/dirsnap/dirsnap/internal/progress"
	"github.com/dirsnap/dirsnap/internal/snapshot"
	"github.com/dirsnap/dirsnap/internal/types"
)

func newTestBuilder() *snapshot.Builder {
	return snapshot.NewBuilder(decode.NewDecoder(0), types.DefaultPolicy())
}

func writeEntryFile(t *testing.T, directory string, name string, content []byte, kind string) types.Entry {
	t.Helper()
	path := filepath.Join(directory, name)
	if writeError := os.WriteFile(path, content, 0o644); writeError != nil {
		t.Fatalf("writing %s: %v", name, writeError)
	}
	return types.Entry{AbsolutePath: path, RelativePath: name, Kind: kind}
}

func TestBuildLineCap(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entry := writeEntryFile(t, directory, "long.txt", []byte(strings.Repeat("line\n", 501)), types.EntryKindText)

	document := builder.Build(directory, []types.Entry{entry}, nil, types.SnapshotOptions{})
	if len(document.Sections) != 1 {
		t.Fatalf("expected one section, got %d", len(document.Sections))
	}
	section := document.Sections[0]
	if len(section.Lines) != 500 {
		t.Fatalf("expected exactly 500 kept lines, got %d", len(section.Lines))
	}
	if section.OmittedLines != 1 {
		t.Fatalf("expected 1 omitted line, got %d", section.OmittedLines)
	}
}

func TestBuildLineCapBoundary(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entry := writeEntryFile(t, directory, "exact.txt", []byte(strings.Repeat("line\n", 500)), types.EntryKindText)

	document := builder.Build(directory, []types.Entry{entry}, nil, types.SnapshotOptions{})
	section := document.Sections[0]
	if len(section.Lines) != 500 {
		t.Fatalf("expected all 500 lines kept at the cap, got %d", len(section.Lines))
	}
	if section.OmittedLines != 0 {
		t.Fatalf("a file exactly at the cap must not report omissions, got %d", section.OmittedLines)
	}
}

func TestBuildLineLengthCapIndependentOfLineCap(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	longLine := strings.Repeat("a", 301)
	entry := writeEntryFile(t, directory, "wide.txt", []byte(longLine+"\nshort\n"), types.EntryKindText)

	document := builder.Build(directory, []types.Entry{entry}, nil, types.SnapshotOptions{})
	section := document.Sections[0]
	if section.OmittedLines != 0 {
		t.Fatalf("line-length truncation must not omit lines, got %d", section.OmittedLines)
	}
	expectedFirst := strings.Repeat("a", 300) + "..."
	if section.Lines[0] != expectedFirst {
		t.Fatalf("expected truncated first line %q, got %q", expectedFirst, section.Lines[0])
	}
	if section.Lines[1] != "short" {
		t.Fatalf("expected second line untouched, got %q", section.Lines[1])
	}
}

func TestBuildAsciiRoundTrip(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entry := writeEntryFile(t, directory, "plain.txt", []byte("alpha\nbeta\n"), types.EntryKindText)

	document := builder.Build(directory, []types.Entry{entry}, nil, types.SnapshotOptions{})
	section := document.Sections[0]
	if section.Notice != "" {
		t.Fatalf("unexpected notice: %q", section.Notice)
	}
	if !reflect.DeepEqual(section.Lines, []string{"alpha", "beta"}) {
		t.Fatalf("expected exact lines, got %v", section.Lines)
	}
	if section.OmittedLines != 0 {
		t.Fatalf("expected no omissions, got %d", section.OmittedLines)
	}
	if section.Encoding == "" {
		t.Fatal("expected an encoding label on a decoded section")
	}
}

func TestBuildKindsAndCounts(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entries := []types.Entry{
		writeEntryFile(t, directory, "a.txt", []byte("text\n"), types.EntryKindText),
		writeEntryFile(t, directory, "b.txt", []byte("more text\n"), types.EntryKindText),
		writeEntryFile(t, directory, "logo.png", []byte{0x89, 'P', 'N', 'G'}, types.EntryKindImage),
		writeEntryFile(t, directory, "blob.bin", []byte{0x00, 0x01}, types.EntryKindBinary),
	}
	entries[2].MimeType = "image/png"
	entries[3].MimeType = "application/octet-stream"

	document := builder.Build(directory, entries, nil, types.SnapshotOptions{})
	expectedCounts := types.KindCounts{Text: 2, Image: 1, Binary: 1}
	if document.Counts != expectedCounts {
		t.Fatalf("expected counts %+v, got %+v", expectedCounts, document.Counts)
	}
	if total := document.Counts.Total(); total != 4 {
		t.Fatalf("expected 4 files in total, got %d", total)
	}

	imageSection := document.Sections[2]
	if imageSection.Notice != "" || imageSection.Lines != nil {
		t.Fatalf("image sections carry neither notice nor lines, got %+v", imageSection)
	}
	if imageSection.Encoding != "" {
		t.Fatal("image entries must never be decoded")
	}
	if imageSection.MimeType != "image/png" {
		t.Fatalf("expected the MIME label to pass through, got %q", imageSection.MimeType)
	}

	binarySection := document.Sections[3]
	if binarySection.Notice != "(binary content not displayed)" {
		t.Fatalf("expected the fixed binary notice, got %q", binarySection.Notice)
	}
	if binarySection.Lines != nil || binarySection.Encoding != "" {
		t.Fatal("binary entries must never be decoded")
	}
}

func TestBuildUnreadableFileNotice(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entry := types.Entry{
		AbsolutePath: filepath.Join(directory, "gone.txt"),
		RelativePath: "gone.txt",
		Kind:         types.EntryKindText,
	}

	document := builder.Build(directory, []types.Entry{entry}, nil, types.SnapshotOptions{})
	section := document.Sections[0]
	if !strings.HasPrefix(section.Notice, "(cannot read file:") {
		t.Fatalf("expected a read-error notice, got %q", section.Notice)
	}
	if len(section.Lines) != 0 {
		t.Fatal("expected no content lines for an unreadable file")
	}
}

func TestBuildProgressEventOrder(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entries := []types.Entry{
		writeEntryFile(t, directory, "first.txt", []byte("1\n"), types.EntryKindText),
		writeEntryFile(t, directory, "second.txt", []byte("2\n"), types.EntryKindText),
	}

	var observed []progress.Event
	builder.Progress = func(event progress.Event) {
		observed = append(observed, event)
	}
	builder.Build(directory, entries, nil, types.SnapshotOptions{})

	expectedKinds := []progress.EventKind{
		progress.EventKindStart,
		progress.EventKindEntry,
		progress.EventKindEntry,
		progress.EventKindSummary,
		progress.EventKindDone,
	}
	if len(observed) != len(expectedKinds) {
		t.Fatalf("expected %d events, got %d", len(expectedKinds), len(observed))
	}
	for index, event := range observed {
		if event.Kind != expectedKinds[index] {
			t.Fatalf("event %d: expected kind %s, got %s", index, expectedKinds[index], event.Kind)
		}
	}
	if observed[1].RelativePath != "first.txt" || observed[2].RelativePath != "second.txt" {
		t.Fatal("entry events must follow enumeration order")
	}
	if observed[3].Counts == nil || observed[3].Counts.Text != 2 {
		t.Fatalf("expected summary counts, got %+v", observed[3].Counts)
	}
}

// runeCounter charges one token per rune, keeping the test deterministic.
type runeCounter struct{}

func (runeCounter) Name() string { return "rune" }

func (runeCounter) CountString(input string) (int, error) {
	return utf8.RuneCountInString(input), nil
}

func TestBuildTokenStats(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	builder.TokenCounter = runeCounter{}
	builder.TokenModel = "rune"
	entries := []types.Entry{
		writeEntryFile(t, directory, "a.txt", []byte("12345\n"), types.EntryKindText),
		writeEntryFile(t, directory, "blob.bin", []byte{0x00}, types.EntryKindBinary),
	}

	document := builder.Build(directory, entries, nil, types.SnapshotOptions{})
	if document.TokenStats == nil {
		t.Fatal("expected token statistics when a counter is configured")
	}
	if document.TokenStats.CountedFiles != 1 {
		t.Fatalf("expected one counted file, got %d", document.TokenStats.CountedFiles)
	}
	if document.TokenStats.Tokens != 6 {
		t.Fatalf("expected 6 tokens for the six-rune file, got %d", document.TokenStats.Tokens)
	}
	if document.TokenStats.Model != "rune" {
		t.Fatalf("expected the model label to be carried, got %q", document.TokenStats.Model)
	}
}

func TestBuildIdempotence(t *testing.T) {
	directory := t.TempDir()
	builder := newTestBuilder()
	entries := []types.Entry{
		writeEntryFile(t, directory, "a.txt", []byte("stable\n"), types.EntryKindText),
	}
	treeLines := []string{"root/", "└── a.txt"}

	first := builder.Build(directory, entries, treeLines, types.SnapshotOptions{Recursive: true})
	second := builder.Build(directory, entries, treeLines, types.SnapshotOptions{Recursive: true})
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical builds must produce identical documents")
	}
}
