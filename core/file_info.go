package core

import (
	"path/filepath"
	"strings"
)

// FileType is the language of a document, used to pick a highlighter.
type FileType int

const (
	FileTypeText FileType = iota
	FileTypeRust
)

func (t FileType) String() string {
	switch t {
	case FileTypeRust:
		return "Rust"
	default:
		return "Text"
	}
}

// FileTypeFromPath detects the file type from the extension.
func FileTypeFromPath(path string) FileType {
	if strings.EqualFold(filepath.Ext(path), ".rs") {
		return FileTypeRust
	}
	return FileTypeText
}

// FileInfo describes the file backing a document. The zero value is an
// unnamed text document.
type FileInfo struct {
	path     string
	fileType FileType
}

func NewFileInfo(path string) FileInfo {
	return FileInfo{
		path:     path,
		fileType: FileTypeFromPath(path),
	}
}

func (f FileInfo) Path() string {
	return f.path
}

func (f FileInfo) HasPath() bool {
	return f.path != ""
}

func (f FileInfo) FileType() FileType {
	return f.fileType
}

// String returns the base name of the file or "[No Name]".
func (f FileInfo) String() string {
	if !f.HasPath() {
		return "[No Name]"
	}
	return filepath.Base(f.path)
}
