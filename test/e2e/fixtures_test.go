package e2e

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

func TestMinimalHWPX_isReadableArchive(t *testing.T) {
	data := MinimalHWPX([][]string{{"hello"}, {"world"}})
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if len(names) != 2 || names[0] != "Contents/section0.xml" || names[1] != "Contents/section1.xml" {
		t.Errorf("entries = %v", names)
	}
}

func TestMinimalPDF_hasTrailerAndPages(t *testing.T) {
	data := string(MinimalPDF(3))
	if !strings.HasPrefix(data, "%PDF-") {
		t.Error("missing PDF header")
	}
	if !strings.Contains(data, "/Count 3") {
		t.Error("page count not written")
	}
	if !strings.Contains(data, "startxref") || !strings.HasSuffix(data, "%%EOF\n") {
		t.Error("trailer not terminated")
	}
}
