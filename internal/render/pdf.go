package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// converterOverrideEnvironmentVariable names an explicit converter binary.
	converterOverrideEnvironmentVariable = "DIRSNAP_PDF_CONVERTER"
	// converterWkhtmltopdf takes positional input and output arguments.
	converterWkhtmltopdf = "wkhtmltopdf"

	// converterNotFoundMessage is returned when no converter is on PATH.
	converterNotFoundMessage = "no HTML-to-PDF converter found; install wkhtmltopdf or chromium, or set DIRSNAP_PDF_CONVERTER"
	// converterOverrideNotFoundFormat reports an unusable explicit converter.
	converterOverrideNotFoundFormat = "PDF converter specified via %s (%s) not found"
	// conversionTimeoutFormat reports a converter killed by its deadline.
	conversionTimeoutFormat = "PDF conversion timed out: %w"
	// conversionFailedFormat reports a converter exit failure with its output.
	conversionFailedFormat = "converting %s to PDF: %v, output: %s"
)

// converterCandidates are probed in order when no override is set. Every
// candidate after wkhtmltopdf speaks the Chromium headless interface.
var converterCandidates = []string{converterWkhtmltopdf, "chromium", "chromium-browser", "google-chrome"}

// Converter invokes an external HTML-to-PDF executable. PDF output is an
// optional convenience; callers fall back to plain HTML when construction
// fails.
type Converter struct {
	executablePath string
	executableName string
}

// NewConverter locates a usable converter. The environment override is
// honored first, as a file path or a PATH lookup, then the known candidates
// are probed in order.
func NewConverter() (*Converter, error) {
	if explicit := strings.TrimSpace(os.Getenv(converterOverrideEnvironmentVariable)); explicit != "" {
		if _, statError := os.Stat(explicit); statError == nil {
			return &Converter{executablePath: explicit, executableName: filepath.Base(explicit)}, nil
		}
		if resolvedPath, lookupError := exec.LookPath(explicit); lookupError == nil {
			return &Converter{executablePath: resolvedPath, executableName: filepath.Base(resolvedPath)}, nil
		}
		return nil, fmt.Errorf(converterOverrideNotFoundFormat, converterOverrideEnvironmentVariable, explicit)
	}
	for _, candidate := range converterCandidates {
		resolvedPath, lookupError := exec.LookPath(candidate)
		if lookupError != nil {
			continue
		}
		return &Converter{executablePath: resolvedPath, executableName: candidate}, nil
	}
	return nil, errors.New(converterNotFoundMessage)
}

// Name returns the resolved converter executable name.
func (converter *Converter) Name() string {
	return converter.executableName
}

// Convert renders the HTML file at htmlPath into a PDF at pdfPath. The
// context bounds the external process lifetime.
func (converter *Converter) Convert(ctx context.Context, htmlPath string, pdfPath string) error {
	// #nosec G204
	command := exec.CommandContext(ctx, converter.executablePath, converter.arguments(htmlPath, pdfPath)...)
	outputBytes, runError := command.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf(conversionTimeoutFormat, ctx.Err())
	}
	if runError != nil {
		return fmt.Errorf(conversionFailedFormat, htmlPath, runError, strings.TrimSpace(string(outputBytes)))
	}
	return nil
}

// arguments builds the converter invocation for the resolved executable.
func (converter *Converter) arguments(htmlPath string, pdfPath string) []string {
	if converter.executableName == converterWkhtmltopdf {
		return []string{"--quiet", htmlPath, pdfPath}
	}
	return []string{"--headless", "--disable-gpu", "--no-sandbox", "--print-to-pdf=" + pdfPath, htmlPath}
}
