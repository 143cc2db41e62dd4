// Package classify decides whether a filesystem entry holds text, image, or
// opaque binary content.
package classify

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dirsnap/dirsnap/internal/types"
)

// probeLength is the maximum number of bytes read when probing file content.
const probeLength = 8000

// nonTextByteRatioLimit is the share of non-text bytes above which probed
// content counts as binary.
const nonTextByteRatioLimit = 0.30

// imageExtensions lists the raster and vector image extensions recognized
// without opening the file.
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".bmp":  {},
	".svg":  {},
	".webp": {},
	".ico":  {},
	".tif":  {},
	".tiff": {},
}

// Classifier decides the content kind of filesystem entries. Classification
// is a pure function of the path extension and the probed bytes, so the same
// file always yields the same kind.
type Classifier struct {
	probeLength int
}

// NewClassifier returns a Classifier with the default probe length.
func NewClassifier() *Classifier {
	return &Classifier{probeLength: probeLength}
}

// Classify reports the content kind for the file at path. Decision order:
// image extension table, then a bounded binary-content probe, then text.
// A probe failure classifies the file as binary and returns the advisory
// error; callers may log it but must not abort the walk over it.
func (classifier *Classifier) Classify(path string) (string, error) {
	extension := strings.ToLower(filepath.Ext(path))
	if _, isImage := imageExtensions[extension]; isImage {
		return types.EntryKindImage, nil
	}

	probedBytes, probeError := classifier.probe(path)
	if probeError != nil {
		return types.EntryKindBinary, probeError
	}
	if IsBinary(probedBytes) {
		return types.EntryKindBinary, nil
	}
	return types.EntryKindText, nil
}

// DetectMime returns a display MIME label for the file at path, or an empty
// string when detection fails. Detection reads a bounded prefix of the file.
func (classifier *Classifier) DetectMime(path string) string {
	detectedType, detectError := mimetype.DetectFile(path)
	if detectError != nil {
		return ""
	}
	return detectedType.String()
}

// probe reads up to probeLength bytes from the file at path.
//
// #nosec G304
func (classifier *Classifier) probe(path string) ([]byte, error) {
	fileHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer fileHandle.Close()

	buffer := make([]byte, classifier.probeLength)
	bytesRead, readError := io.ReadFull(fileHandle, buffer)
	if readError != nil && readError != io.EOF && readError != io.ErrUnexpectedEOF {
		return nil, readError
	}
	return buffer[:bytesRead], nil
}

// IsBinary reports whether data looks like binary content: any NUL byte, or
// a non-text byte share above nonTextByteRatioLimit. Bytes above 0x7F are
// never counted because multi-byte and legacy encodings use them for genuine
// text; the decoder's control-character screen is the authoritative check
// for decoded content.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	nonTextCount := 0
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
		if isNonTextByte(byteValue) {
			nonTextCount++
		}
	}
	return float64(nonTextCount)/float64(len(data)) > nonTextByteRatioLimit
}

// isNonTextByte reports whether a byte falls outside the printable range and
// the common whitespace and escape controls.
func isNonTextByte(byteValue byte) bool {
	if byteValue >= 0x20 && byteValue != 0x7F {
		return false
	}
	switch byteValue {
	case '\t', '\n', '\r', '\f', '\b', 0x1B:
		return false
	}
	return true
}
