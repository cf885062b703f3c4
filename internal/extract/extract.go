// Package extract provides deep text extraction from attachment files.
// It supports legacy HWP (OLE compound-file container), HWPX (ZIP+XML),
// and PDF, and returns normalized plain text for downstream analysis.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Supported file extensions (lower-cased, with leading dot).
const (
	extHWP  = ".hwp"
	extHWPX = ".hwpx"
	extPDF  = ".pdf"
)

// Fatal errors returned by Parse. Any other failure inside an extractor is
// recovered and embedded as sentinel text so one corrupt attachment never
// aborts a batch.
var (
	ErrMissingFile       = errors.New("file not found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// errScannedPDF marks a PDF that opened fine but yielded no text on any page,
// the hallmark of an image-only scan. The dispatcher maps it to a manual-check
// sentinel, with wording distinct from parse errors.
var errScannedPDF = errors.New("image-based document, no extractable text")

const (
	parseErrorPrefix  = "[parse error] "
	manualCheckPrefix = "[manual check required] "
)

// Parser dispatches a file to the extractor matching its extension and funnels
// the raw text through Normalize. A Parser holds no per-call state; independent
// Parse calls may run concurrently.
type Parser struct {
	logger *zap.Logger // optional; when set, logs extraction events
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLogger sets a logger for extraction events (skipped sections, empty
// pages, recovered failures).
func WithLogger(l *zap.Logger) ParserOption {
	return func(p *Parser) { p.logger = l }
}

// NewParser returns a new Parser.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts normalized plain text from the file at path.
//
// It returns ErrMissingFile when the path does not resolve to an existing
// file and ErrUnsupportedFormat when the extension is outside {.hwp, .hwpx,
// .pdf}. It never returns an error for internal parsing failures: those
// degrade to a descriptive sentinel embedded in the returned string, either
// "[parse error] ..." or "[manual check required] ..." for image-only PDFs.
func (p *Parser) Parse(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	ext := strings.ToLower(filepath.Ext(path))

	var text string
	var err error
	switch ext {
	case extHWP:
		text, err = p.parseHWP(path)
	case extHWPX:
		text, err = p.parseHWPX(path)
	case extPDF:
		text, err = p.parsePDF(path)
	default:
		return "", fmt.Errorf("%w: %q (supported: %s, %s, %s)", ErrUnsupportedFormat, ext, extHWP, extHWPX, extPDF)
	}
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("extraction failed", zap.String("path", path), zap.Error(err))
		}
		return sentinelText(err), nil
	}
	return Normalize(text), nil
}

// sentinelText maps an internal extraction failure to the sentinel string
// embedded in Parse's return value. The dispatcher owns this mapping; the
// extractors only report typed errors.
func sentinelText(err error) string {
	if errors.Is(err, errScannedPDF) {
		return manualCheckPrefix + errScannedPDF.Error()
	}
	return parseErrorPrefix + err.Error()
}

// supportedExt reports whether ext (lower-cased, with dot) is parseable.
func supportedExt(ext string) bool {
	switch ext {
	case extHWP, extHWPX, extPDF:
		return true
	}
	return false
}
