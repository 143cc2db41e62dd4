// Package render turns a snapshot document into presentation formats. The
// document model stays renderer-agnostic; this package owns the HTML page
// layout and the optional external PDF conversion.
package render

import (
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dirsnap/dirsnap/internal/types"
	"github.com/dirsnap/dirsnap/internal/utils"
)

const (
	// defaultFontSizePixels is used when the caller supplies no font size.
	defaultFontSizePixels = 12

	// htmlRenderFailedFormat wraps template execution errors.
	htmlRenderFailedFormat = "rendering snapshot HTML: %w"
	// imageDataURIFormat inlines image bytes as a self-contained source.
	imageDataURIFormat = "data:%s;base64,%s"
	// imageEmbedFailedFormat replaces an image that could not be read back.
	imageEmbedFailedFormat = "(cannot embed image: %v)"
	// omissionMarkerFormat reports lines dropped by the line cap.
	omissionMarkerFormat = "... %d lines omitted"
	// countsSummaryFormat is the one-line tally under the page title.
	countsSummaryFormat = "%d files: %d text, %d image, %d binary"
	// tokenSummaryFormat is the optional token statistics footer.
	tokenSummaryFormat = "~%d tokens across %d files (%s)"
	// modifiedLabelPrefix precedes the last-modified stamp in section metadata.
	modifiedLabelPrefix = "modified "
)

// pageTemplateText is the complete self-contained snapshot page. Content is
// injected through the auto-escaping pipeline only.
const pageTemplateText = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: "SF Mono", Menlo, Consolas, "Liberation Mono", monospace; font-size: {{.FontSize}}px; margin: 2em; color: #1f2328; }
h1 { font-size: 1.4em; }
h2 { font-size: 1.1em; border-bottom: 1px solid #d0d7de; padding-bottom: 0.2em; margin-top: 2em; }
pre.tree { background: #f6f8fa; padding: 1em; border-radius: 6px; }
p.meta { color: #59636e; font-size: 0.85em; }
p.notice { color: #9a6700; font-style: italic; }
p.omission { color: #59636e; font-style: italic; }
table.content { border-collapse: collapse; width: 100%; }
td.line-number { color: #8c959f; text-align: right; padding-right: 1em; vertical-align: top; }
td.line-text { white-space: pre-wrap; word-break: break-all; }
img.embedded { max-width: 100%; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Summary}}</p>
<pre class="tree">{{range .TreeLines}}{{.}}
{{end}}</pre>
{{range .Sections}}<section>
<h2>{{.RelativePath}}</h2>
<p class="meta">{{.Meta}}</p>
{{if .ImageSource}}<img class="embedded" src="{{.ImageSource}}" alt="{{.RelativePath}}">
{{end}}{{if .Notice}}<p class="notice">{{.Notice}}</p>
{{end}}{{if .Lines}}<table class="content">
{{range .Lines}}<tr><td class="line-number">{{.Number}}</td><td class="line-text">{{.Text}}</td></tr>
{{end}}</table>
{{end}}{{if .Omission}}<p class="omission">{{.Omission}}</p>
{{end}}</section>
{{end}}{{if .TokenSummary}}<p class="meta">{{.TokenSummary}}</p>
{{end}}</body>
</html>
`

var pageTemplate = template.Must(template.New("snapshot").Parse(pageTemplateText))

// htmlLine is one numbered content line of a text section.
type htmlLine struct {
	Number int
	Text   string
}

// htmlSection is the view model of one file section.
type htmlSection struct {
	RelativePath string
	Meta         string
	ImageSource  template.URL
	Notice       string
	Lines        []htmlLine
	Omission     string
}

// htmlPage is the view model of the full snapshot page.
type htmlPage struct {
	Title        string
	FontSize     int
	Summary      string
	TreeLines    []string
	Sections     []htmlSection
	TokenSummary string
}

// WriteHTML renders the snapshot document as one self-contained HTML page.
// Image bytes are read back from disk and inlined as data URIs; an image that
// can no longer be read degrades to a notice instead of failing the render.
func WriteHTML(writer io.Writer, document types.SnapshotDocument) error {
	if executeError := pageTemplate.Execute(writer, buildPage(document)); executeError != nil {
		return fmt.Errorf(htmlRenderFailedFormat, executeError)
	}
	return nil
}

// buildPage maps the document model onto the page view model.
func buildPage(document types.SnapshotDocument) htmlPage {
	page := htmlPage{
		Title:     document.Options.Title,
		FontSize:  document.Options.FontSize,
		TreeLines: document.TreeLines,
		Summary: fmt.Sprintf(countsSummaryFormat,
			document.Counts.Total(), document.Counts.Text, document.Counts.Image, document.Counts.Binary),
	}
	if page.Title == "" {
		page.Title = filepath.Base(document.RootPath)
	}
	if page.FontSize <= 0 {
		page.FontSize = defaultFontSizePixels
	}
	for _, section := range document.Sections {
		page.Sections = append(page.Sections, buildSectionView(section))
	}
	if document.TokenStats != nil {
		page.TokenSummary = fmt.Sprintf(tokenSummaryFormat,
			document.TokenStats.Tokens, document.TokenStats.CountedFiles, document.TokenStats.Model)
	}
	return page
}

// buildSectionView maps one file section onto its view model.
func buildSectionView(section types.FileSection) htmlSection {
	view := htmlSection{
		RelativePath: section.RelativePath,
		Meta:         sectionMeta(section),
		Notice:       section.Notice,
	}
	if section.Kind == types.EntryKindImage {
		imageSource, embedNotice := embedImage(section)
		view.ImageSource = imageSource
		if embedNotice != "" {
			view.Notice = embedNotice
		}
	}
	for index, line := range section.Lines {
		view.Lines = append(view.Lines, htmlLine{Number: index + 1, Text: line})
	}
	if section.OmittedLines > 0 {
		view.Omission = fmt.Sprintf(omissionMarkerFormat, section.OmittedLines)
	}
	return view
}

// sectionMeta assembles the one-line description under a section heading.
func sectionMeta(section types.FileSection) string {
	meta := section.Kind + ", " + utils.FormatFileSize(section.SizeBytes)
	if section.Encoding != "" {
		meta += ", " + section.Encoding
	}
	if section.MimeType != "" {
		meta += ", " + section.MimeType
	}
	if section.LastModified != "" {
		meta += ", " + modifiedLabelPrefix + section.LastModified
	}
	return meta
}

// embedImage reads the image bytes back and returns a data URI. The MIME
// label recorded at classification time is preferred; a missing label is
// re-detected from the bytes on disk.
func embedImage(section types.FileSection) (template.URL, string) {
	// #nosec G304
	imageBytes, readError := os.ReadFile(section.AbsolutePath)
	if readError != nil {
		return "", fmt.Sprintf(imageEmbedFailedFormat, readError)
	}
	mimeLabel := section.MimeType
	if mimeLabel == "" {
		mimeLabel = mimetype.Detect(imageBytes).String()
	}
	encoded := base64.StdEncoding.EncodeToString(imageBytes)
	return template.URL(fmt.Sprintf(imageDataURIFormat, mimeLabel, encoded)), ""
}
