package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// parsePDF extracts text from a PDF page by page. A page yielding no text is
// logged, not an error; when every page is empty the document is an image-only
// scan and errScannedPDF is reported so the dispatcher can emit the
// manual-check sentinel instead of an empty string.
func (p *Parser) parsePDF(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("invalid PDF file: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("invalid PDF file: %w", err)
	}
	defer f.Close()

	var texts []string
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText := p.pageText(page, i)
		if strings.TrimSpace(pageText) == "" {
			if p.logger != nil {
				p.logger.Debug("pdf page has no text", zap.Int("page", i))
			}
			continue
		}
		texts = append(texts, pageText)
	}
	if len(texts) == 0 {
		return "", errScannedPDF
	}
	return strings.Join(texts, "\n"), nil
}

// pageText extracts one page's plain text. Failures, including panics inside
// the pdf library on malformed content streams, degrade to an empty page so
// the rest of the document still contributes.
func (p *Parser) pageText(page pdf.Page, num int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Warn("pdf page extraction panicked", zap.Int("page", num), zap.Any("panic", r))
			}
			text = ""
		}
	}()
	t, err := page.GetPlainText(nil)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("pdf page extraction failed", zap.Int("page", num), zap.Error(err))
		}
		return ""
	}
	return t
}
