package lrc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/lyricsync/internal/lyrics"
)

// writes LRC files to disk
type Writer struct {
	Tags []Tag
}

func NewWriter(tags ...Tag) *Writer {
	return &Writer{Tags: tags}
}

// writes the export of lines to path and returns the number of lines written
func (w *Writer) Write(lines []lyrics.Line, path string) (int, error) {
	if err := ensureDir(path); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	file := &File{Tags: w.Tags, Lines: lines}
	body := file.Render()

	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", path, err)
	}

	written := 0
	for _, l := range lines {
		if lyrics.IsValidTimestamp(l.Timestamp) {
			written++
		}
	}
	return written, nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
