// Package decode turns text-classified files into displayable character
// content: it detects the character encoding, decodes the bytes, strips byte
// order marks, and screens out files that are not really text.
package decode

import (
	"fmt"
	"os"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/dirsnap/dirsnap/internal/classify"
	"github.com/dirsnap/dirsnap/internal/types"
)

const (
	// fallbackEncodingLabel is reported when charset detection cannot name the encoding.
	fallbackEncodingLabel = "utf-8"
	// byteOrderMark is stripped once from the head of decoded content.
	byteOrderMark = "\uFEFF"
	// controlRatioDetailFormat describes a failed control-character screen.
	controlRatioDetailFormat = "control characters make up %.0f%% of the decoded content"
)

// Decoder reads text entries. Each Decoder carries its own charset detector;
// nothing is shared across independent builds and nothing is cached between
// reads.
type Decoder struct {
	controlRatioLimit float64
	charsetDetector   *chardet.Detector
}

// NewDecoder returns a Decoder that rejects decoded content whose
// control-character share exceeds controlRatioLimit. Non-positive limits fall
// back to the default policy value.
func NewDecoder(controlRatioLimit float64) *Decoder {
	if controlRatioLimit <= 0 {
		controlRatioLimit = types.DefaultPolicy().ControlRatioLimit
	}
	return &Decoder{
		controlRatioLimit: controlRatioLimit,
		charsetDetector:   chardet.NewTextDetector(),
	}
}

// Read decodes the file at path. Every failure is terminal and captured in
// the returned value, never propagated: an unreadable file, content the
// full-file binary check rejects (the authoritative guard behind the
// classifier's bounded probe), and decoded content that fails the
// control-character screen all produce a result with a Failure and no text.
func (decoder *Decoder) Read(path string) types.DecodedContent {
	content, readError := os.ReadFile(path)
	if readError != nil {
		return types.DecodedContent{
			Failure: &types.ContentFailure{Reason: types.FailureReadError, Detail: readError.Error()},
		}
	}
	if classify.IsBinary(content) {
		return types.DecodedContent{
			Failure: &types.ContentFailure{Reason: types.FailureBinary},
		}
	}

	text, encodingLabel := decoder.decodeDetected(content)
	text = strings.TrimPrefix(text, byteOrderMark)

	controlRatio := controlCharacterRatio(text)
	if controlRatio > decoder.controlRatioLimit {
		return types.DecodedContent{
			Encoding: encodingLabel,
			Failure: &types.ContentFailure{
				Reason: types.FailureControlChars,
				Detail: fmt.Sprintf(controlRatioDetailFormat, controlRatio*100),
			},
		}
	}

	return types.DecodedContent{Text: text, Encoding: encodingLabel}
}

// decodeDetected decodes content using the best detected charset and reports
// the label used. Detection or decoding trouble falls back to interpreting
// the bytes as UTF-8.
func (decoder *Decoder) decodeDetected(content []byte) (string, string) {
	detectionResult, detectError := decoder.charsetDetector.DetectBest(content)
	if detectError != nil || detectionResult == nil || detectionResult.Charset == "" {
		return string(content), fallbackEncodingLabel
	}
	characterEncoding, lookupError := ianaindex.IANA.Encoding(detectionResult.Charset)
	if lookupError != nil || characterEncoding == nil {
		return string(content), fallbackEncodingLabel
	}
	decodedBytes, decodeError := characterEncoding.NewDecoder().Bytes(content)
	if decodeError != nil {
		return string(content), fallbackEncodingLabel
	}
	return string(decodedBytes), detectionResult.Charset
}

// controlCharacterRatio reports the share of control runes in text: the C0
// range without tab, line feed, and carriage return, plus DEL and the C1
// range.
func controlCharacterRatio(text string) float64 {
	if text == "" {
		return 0
	}
	totalRunes := 0
	controlRunes := 0
	for _, runeValue := range text {
		totalRunes++
		if isControlRune(runeValue) {
			controlRunes++
		}
	}
	return float64(controlRunes) / float64(totalRunes)
}

// isControlRune reports whether a rune belongs to the screened control set.
func isControlRune(runeValue rune) bool {
	switch runeValue {
	case '\t', '\n', '\r':
		return false
	}
	if runeValue < 0x20 {
		return true
	}
	if runeValue == 0x7F {
		return true
	}
	return runeValue >= 0x80 && runeValue <= 0x9F
}
