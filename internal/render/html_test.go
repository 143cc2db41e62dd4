package render_test

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dirsnap/dirsnap/internal/render"
	"github.com/dirsnap/dirsnap/internal/types"
)

func renderToString(t *testing.T, document types.SnapshotDocument) string {
	t.Helper()
	var buffer bytes.Buffer
	if renderError := render.WriteHTML(&buffer, document); renderError != nil {
		t.Fatalf("WriteHTML failed: %v", renderError)
	}
	return buffer.String()
}

func TestWriteHTMLEscapesContent(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath:  "/tmp/example",
		TreeLines: []string{"example/", "└── <weird>.txt"},
		Sections: []types.FileSection{
			{
				RelativePath: "<weird>.txt",
				Kind:         types.EntryKindText,
				Lines:        []string{`<script>alert("x")</script>`},
			},
		},
		Counts: types.KindCounts{Text: 1},
	}

	page := renderToString(t, document)
	if strings.Contains(page, `<script>alert`) {
		t.Fatal("file content reached the page unescaped")
	}
	if !strings.Contains(page, "&lt;script&gt;") {
		t.Fatal("expected escaped script tag in rendered output")
	}
	if !strings.Contains(page, "&lt;weird&gt;.txt") {
		t.Fatal("expected escaped file name in rendered output")
	}
}

func TestWriteHTMLNumbersLines(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath: "/tmp/example",
		Sections: []types.FileSection{
			{RelativePath: "a.txt", Kind: types.EntryKindText, Lines: []string{"alpha", "beta"}},
		},
		Counts: types.KindCounts{Text: 1},
	}

	page := renderToString(t, document)
	if !strings.Contains(page, `<td class="line-number">1</td><td class="line-text">alpha</td>`) {
		t.Fatal("expected line 1 with its number")
	}
	if !strings.Contains(page, `<td class="line-number">2</td><td class="line-text">beta</td>`) {
		t.Fatal("expected line 2 with its number")
	}
}

func TestWriteHTMLOmissionMarker(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath: "/tmp/example",
		Sections: []types.FileSection{
			{RelativePath: "big.txt", Kind: types.EntryKindText, Lines: []string{"kept"}, OmittedLines: 7},
		},
		Counts: types.KindCounts{Text: 1},
	}

	page := renderToString(t, document)
	if !strings.Contains(page, "... 7 lines omitted") {
		t.Fatal("expected the omission marker with the omitted count")
	}
}

func TestWriteHTMLNoticeRendering(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath: "/tmp/example",
		Sections: []types.FileSection{
			{RelativePath: "blob.bin", Kind: types.EntryKindBinary, Notice: "(binary content not displayed)"},
		},
		Counts: types.KindCounts{Binary: 1},
	}

	page := renderToString(t, document)
	if !strings.Contains(page, "(binary content not displayed)") {
		t.Fatal("expected the binary notice in rendered output")
	}
	if strings.Contains(page, `<table class="content">`) {
		t.Fatal("notice-only sections must not render a content table")
	}
}

func TestWriteHTMLEmbedsImage(t *testing.T) {
	directory := t.TempDir()
	imageBytes := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
	imagePath := filepath.Join(directory, "logo.png")
	if writeError := os.WriteFile(imagePath, imageBytes, 0o644); writeError != nil {
		t.Fatalf("writing image fixture: %v", writeError)
	}

	document := types.SnapshotDocument{
		RootPath: directory,
		Sections: []types.FileSection{
			{RelativePath: "logo.png", AbsolutePath: imagePath, Kind: types.EntryKindImage, MimeType: "image/png"},
		},
		Counts: types.KindCounts{Image: 1},
	}

	page := renderToString(t, document)
	expectedSource := "data:image/png;base64," + base64.StdEncoding.EncodeToString(imageBytes)
	if !strings.Contains(page, expectedSource) {
		t.Fatal("expected the image inlined as a data URI")
	}
}

func TestWriteHTMLImageReadFailure(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath: "/tmp/example",
		Sections: []types.FileSection{
			{RelativePath: "gone.png", AbsolutePath: "/tmp/example/gone.png", Kind: types.EntryKindImage},
		},
		Counts: types.KindCounts{Image: 1},
	}

	page := renderToString(t, document)
	if !strings.Contains(page, "(cannot embed image:") {
		t.Fatal("expected an embed failure notice for a missing image")
	}
	if strings.Contains(page, "data:") {
		t.Fatal("a missing image must not produce a data URI")
	}
}

func TestWriteHTMLTitleAndFontSize(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath: "/tmp/example",
		Options:  types.SnapshotOptions{Title: "Release Audit", FontSize: 14},
	}

	page := renderToString(t, document)
	if !strings.Contains(page, "<title>Release Audit</title>") {
		t.Fatal("expected the configured title")
	}
	if !strings.Contains(page, "font-size: 14px") {
		t.Fatal("expected the configured font size")
	}
}

func TestWriteHTMLDefaults(t *testing.T) {
	document := types.SnapshotDocument{RootPath: "/tmp/example"}

	page := renderToString(t, document)
	if !strings.Contains(page, "<title>example</title>") {
		t.Fatal("expected the root directory name as the default title")
	}
	if !strings.Contains(page, "font-size: 12px") {
		t.Fatal("expected the default font size")
	}
}

func TestWriteHTMLSummaries(t *testing.T) {
	document := types.SnapshotDocument{
		RootPath:   "/tmp/example",
		Counts:     types.KindCounts{Text: 2, Image: 1, Binary: 1},
		TokenStats: &types.TokenStats{Model: "gpt-4o", Tokens: 123, CountedFiles: 2},
	}

	page := renderToString(t, document)
	if !strings.Contains(page, "4 files: 2 text, 1 image, 1 binary") {
		t.Fatal("expected the per-kind counts summary")
	}
	if !strings.Contains(page, "~123 tokens across 2 files (gpt-4o)") {
		t.Fatal("expected the token statistics footer")
	}
}
