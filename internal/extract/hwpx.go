package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// hwpxSectionRe matches the canonical body entry names inside an HWPX archive
// (Contents/section0.xml, Contents/section1.xml, ...).
var hwpxSectionRe = regexp.MustCompile(`(?i)^Contents/section\d+\.xml$`)

// hwpxNamespaces are the namespace URIs known to carry the paragraph schema.
// Producer versions differ, so element lookup tries these first and falls
// back to matching by local name alone.
var hwpxNamespaces = []string{
	"http://www.hancom.co.kr/hwpml/2011/paragraph",
	"http://www.hancom.co.kr/hwpml/2016/paragraph",
	"urn:hancom:hwpml:paragraph",
}

// parseHWPX extracts text from an HWPX file, the ZIP+XML successor of HWP.
// Body text lives in <t> elements of the Contents/section<N>.xml entries.
func (p *Parser) parseHWPX(path string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("invalid HWPX file: %v", r)
		}
	}()

	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("invalid HWPX file: %w", err)
	}
	defer zr.Close()

	entries := bodyEntries(&zr.Reader)
	if len(entries) == 0 {
		return "", errors.New("no body sections found")
	}

	var texts []string
	for _, f := range entries {
		data, readErr := readZipEntry(f)
		if readErr != nil {
			if p.logger != nil {
				p.logger.Warn("hwpx entry read failed", zap.String("entry", f.Name), zap.Error(readErr))
			}
			continue
		}
		text, parseErr := sectionXMLText(data)
		if parseErr != nil {
			if p.logger != nil {
				p.logger.Warn("hwpx section parse failed", zap.String("entry", f.Name), zap.Error(parseErr))
			}
			continue
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	return strings.Join(texts, "\n"), nil
}

// bodyEntries selects the archive entries holding body sections, sorted by
// filename. Archives lacking the canonical section naming fall back to any
// XML entry under Contents/.
func bodyEntries(zr *zip.Reader) []*zip.File {
	var entries []*zip.File
	for _, f := range zr.File {
		if hwpxSectionRe.MatchString(f.Name) {
			entries = append(entries, f)
		}
	}
	if len(entries) == 0 {
		for _, f := range zr.File {
			if strings.HasPrefix(f.Name, "Contents/") && strings.HasSuffix(f.Name, ".xml") {
				entries = append(entries, f)
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// sectionXMLText collects the text of every t element in one section XML, in
// document order, newline-joined. Elements in a known paragraph namespace are
// preferred; when none match, any element locally named t counts regardless
// of namespace.
func sectionXMLText(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var known, local []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "t" {
			continue
		}
		var s string
		if err := dec.DecodeElement(&s, &se); err != nil {
			return "", err
		}
		if s == "" {
			continue
		}
		local = append(local, s)
		if knownNamespace(se.Name.Space) {
			known = append(known, s)
		}
	}
	texts := known
	if len(texts) == 0 {
		texts = local
	}
	return strings.Join(texts, "\n"), nil
}

func knownNamespace(uri string) bool {
	for _, ns := range hwpxNamespaces {
		if uri == ns {
			return true
		}
	}
	return false
}
