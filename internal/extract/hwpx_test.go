package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeHWPX builds an HWPX archive at dir/name with the given entries
// (entry name -> raw XML bytes) and returns its path.
func writeHWPX(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	w := zip.NewWriter(f)
	for entry, content := range entries {
		fw, err := w.Create(entry)
		if err != nil {
			t.Fatalf("zip create %s: %v", entry, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("zip write %s: %v", entry, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("file close: %v", err)
	}
	return path
}

// sectionXML wraps paragraphs in the canonical 2011 paragraph namespace.
func sectionXML(texts ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<hs:sec xmlns:hp="http://www.hancom.co.kr/hwpml/2011/paragraph" xmlns:hs="http://www.hancom.co.kr/hwpml/2011/section">`)
	for _, text := range texts {
		b.WriteString(`<hp:p><hp:run><hp:t>` + text + `</hp:t></hp:run></hp:p>`)
	}
	b.WriteString(`</hs:sec>`)
	return b.String()
}

func TestParseHWPX_singleSection(t *testing.T) {
	path := writeHWPX(t, t.TempDir(), "notice.hwpx", map[string]string{
		"Contents/section0.xml": sectionXML("정부 지원사업 공고문", "총 사업비: 5억원 (인건비 3억원 포함)"),
	})
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !strings.Contains(got, "정부 지원사업 공고문") || !strings.Contains(got, "인건비") {
		t.Errorf("got %q", got)
	}
}

func TestParseHWPX_multipleSectionsInOrder(t *testing.T) {
	path := writeHWPX(t, t.TempDir(), "multi.hwpx", map[string]string{
		"Contents/section0.xml": sectionXML("섹션 0의 내용"),
		"Contents/section1.xml": sectionXML("섹션 1의 내용"),
	})
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "섹션 0의 내용\n섹션 1의 내용" {
		t.Errorf("got %q", got)
	}
}

func TestParseHWPX_fallbackDiscovery(t *testing.T) {
	// no canonical section<N>.xml naming; any XML under Contents/ still counts
	path := writeHWPX(t, t.TempDir(), "odd.hwpx", map[string]string{
		"Contents/body.xml": sectionXML("본문 텍스트"),
		"mimetype":          "application/hwp+zip",
	})
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "본문 텍스트" {
		t.Errorf("got %q", got)
	}
}

func TestParseHWPX_unknownNamespaceFallsBackToLocalName(t *testing.T) {
	path := writeHWPX(t, t.TempDir(), "ns.hwpx", map[string]string{
		"Contents/section0.xml": `<sec xmlns:x="urn:some:future:namespace"><x:p><x:t>hello</x:t></x:p></sec>`,
	})
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestParseHWPX_malformedEntrySkipped(t *testing.T) {
	path := writeHWPX(t, t.TempDir(), "partial.hwpx", map[string]string{
		"Contents/section0.xml": sectionXML("alpha"),
		"Contents/section1.xml": `<hs:sec><unclosed>`,
	})
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "alpha" {
		t.Errorf("got %q", got)
	}
}

func TestParseHWPX_noBodySections(t *testing.T) {
	path := writeHWPX(t, t.TempDir(), "empty.hwpx", map[string]string{
		"mimetype": "application/hwp+zip",
	})
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got != "[parse error] no body sections found" {
		t.Errorf("got %q", got)
	}
}

func TestParseHWPX_notAZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hwpx")
	if err := os.WriteFile(path, []byte("This is not a valid ZIP file"), 0600); err != nil {
		t.Fatal(err)
	}
	got, err := NewParser().Parse(path)
	if err != nil {
		t.Fatalf("Parse returned error for recoverable failure: %v", err)
	}
	if !strings.HasPrefix(got, "[parse error]") {
		t.Errorf("got %q, want parse-error sentinel", got)
	}
}
