package extract

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStat_existingSupportedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Notice.HWP")
	if err := os.WriteFile(path, []byte("0123456789"), 0600); err != nil {
		t.Fatal(err)
	}
	info := Stat(path)
	if info.Name != "Notice.HWP" {
		t.Errorf("Name = %q", info.Name)
	}
	if info.Extension != ".hwp" {
		t.Errorf("Extension = %q", info.Extension)
	}
	if info.SizeBytes != 10 {
		t.Errorf("SizeBytes = %d", info.SizeBytes)
	}
	if !info.Exists || !info.Supported {
		t.Errorf("Exists = %v, Supported = %v", info.Exists, info.Supported)
	}
}

func TestStat_missingFile(t *testing.T) {
	info := Stat("/nonexistent/file.pdf")
	if info.Exists {
		t.Error("Exists = true for missing file")
	}
	if info.SizeBytes != 0 {
		t.Errorf("SizeBytes = %d", info.SizeBytes)
	}
	if !info.Supported {
		t.Error("Supported should depend only on the extension")
	}
}

func TestStat_unsupportedExtension(t *testing.T) {
	if info := Stat("document.docx"); info.Supported {
		t.Error("docx reported as supported")
	}
}
