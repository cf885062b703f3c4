package extract

import (
	"os"
	"path/filepath"
	"strings"
)

// FileInfo describes an attachment file before parsing.
type FileInfo struct {
	Name      string
	Extension string
	SizeBytes int64
	Exists    bool
	Supported bool
}

// Stat returns basic information about the file at path. It never fails: a
// missing file yields Exists false and a zero size.
func Stat(path string) FileInfo {
	info := FileInfo{
		Name:      filepath.Base(path),
		Extension: strings.ToLower(filepath.Ext(path)),
	}
	info.Supported = supportedExt(info.Extension)
	if fi, err := os.Stat(path); err == nil {
		info.Exists = true
		info.SizeBytes = fi.Size()
	}
	return info
}
