package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteTextFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	if err := writeTextFile(dir, "/intake/notice.hwp", "extracted text"); err != nil {
		t.Fatalf("writeTextFile: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "notice.txt"))
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "extracted text" {
		t.Errorf("got %q", data)
	}
}

func TestWriteTextFile_noExtension(t *testing.T) {
	dir := t.TempDir()
	if err := writeTextFile(dir, "plainname", "x"); err != nil {
		t.Fatalf("writeTextFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "plainname.txt")); err != nil {
		t.Errorf("output missing: %v", err)
	}
}

func TestLoadConfig_missingEverywhereUsesDefaults(t *testing.T) {
	// run from an empty directory so no config.yaml fallback is found
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Watch.Extensions) == 0 {
		t.Error("defaults not applied")
	}
}
