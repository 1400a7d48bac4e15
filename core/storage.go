package core

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/ionut-t/gotext/internal/log"
)

// Storage loads and saves documents as newline delimited lines.
type Storage interface {
	Load(path string) ([]string, error)
	Save(path string, lines []string) error
}

// FileStorage is a Storage on top of an afero filesystem.
type FileStorage struct {
	fs afero.Fs
}

func NewFileStorage(fs afero.Fs) *FileStorage {
	return &FileStorage{fs: fs}
}

// NewOSStorage returns a FileStorage for the real filesystem.
func NewOSStorage() *FileStorage {
	return NewFileStorage(afero.NewOsFs())
}

// Load reads the file at path and splits it into lines. A trailing carriage
// return is stripped from every line and a final newline does not produce
// an extra empty line.
func (s *FileStorage) Load(path string) ([]string, error) {
	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileLoad, err)
	}

	if len(content) == 0 {
		return nil, nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	log.Debug(log.CatStorage, "loaded file", "path", path, "lines", len(lines))
	return lines, nil
}

// Save writes lines to path, each followed by a newline.
func (s *FileStorage) Save(path string, lines []string) error {
	f, err := s.fs.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileSave, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: %w", ErrFileSave, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			_ = f.Close()
			return fmt.Errorf("%w: %w", ErrFileSave, err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%w: %w", ErrFileSave, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrFileSave, err)
	}

	log.Debug(log.CatStorage, "saved file", "path", path, "lines", len(lines))
	return nil
}
