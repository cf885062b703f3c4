// Package e2e provides end-to-end tests; this file builds minimal attachment
// files for the supported formats.
package e2e

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
)

// SupportedFileExtensions is the list of extensions exercised by the E2E
// file-based tests. Legacy .hwp is not generated here (no minimal OLE
// compound-file writer); its record and section handling is covered by the
// extractor's own tests on raw stream bytes.
var SupportedFileExtensions = []string{".hwpx", ".pdf"}

// MinimalHWPX builds an HWPX archive with one Contents/section<N>.xml per
// entry of texts, each section holding its texts as hp:t runs in separate
// paragraphs. Section files are numbered in slice order.
func MinimalHWPX(sections [][]string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for i, texts := range sections {
		fw, _ := w.Create(fmt.Sprintf("Contents/section%d.xml", i))
		_, _ = fw.Write([]byte(sectionXML(texts)))
	}
	_ = w.Close()
	return buf.Bytes()
}

func sectionXML(texts []string) string {
	var b strings.Builder
	b.WriteString(`<hs:sec xmlns:hs="http://www.hancom.co.kr/hwpml/2011/section" xmlns:hp="http://www.hancom.co.kr/hwpml/2011/paragraph">`)
	for _, text := range texts {
		b.WriteString(`<hp:p><hp:run><hp:t>`)
		b.WriteString(text)
		b.WriteString(`</hp:t></hp:run></hp:p>`)
	}
	b.WriteString(`</hs:sec>`)
	return b.String()
}

// MinimalPDF builds a well-formed PDF with the given number of pages, each
// with an empty content stream (no text operators). Object offsets for the
// cross-reference table are computed while writing, so the file is exact by
// construction. Useful for exercising the scanned-document path.
func MinimalPDF(pages int) []byte {
	var buf bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, pages)
	for i := range kids {
		kids[i] = fmt.Sprintf("%d 0 R", 3+i)
	}
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		obj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents %d 0 R >>\nendobj\n", 3+i, 3+pages+i))
	}
	for i := 0; i < pages; i++ {
		obj(fmt.Sprintf("%d 0 obj\n<< /Length 0 >>\nstream\n\nendstream\nendobj\n", 3+pages+i))
	}

	xrefOffset := buf.Len()
	size := 3 + 2*pages // free entry + catalog + pages + page/content pairs
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", size))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefOffset))
	return buf.Bytes()
}
