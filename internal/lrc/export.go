package lrc

import (
	"path/filepath"
	"strings"

	"github.com/mgpai22/lyricsync/internal/lyrics"
)

const (
	Extension       = ".lrc"
	MIMEType        = "text/plain"
	DefaultFileName = "lyrics" + Extension
)

// renders synced lines as LRC text. Lines without a valid timestamp are
// left out; the result has no trailing newline.
func Export(lines []lyrics.Line) string {
	var out []string
	for _, line := range lines {
		if line.Timestamp == "" || !lyrics.IsValidTimestamp(line.Timestamp) {
			continue
		}
		out = append(out, "["+NormalizeTimestamp(line.Timestamp)+"]"+line.Text)
	}
	return strings.Join(out, "\n")
}

// rewrites a valid timestamp to exactly two fractional digits
func NormalizeTimestamp(ts string) string {
	whole, frac, ok := strings.Cut(ts, ".")
	if !ok {
		return ts + ".00"
	}
	if len(frac) < 2 {
		frac += strings.Repeat("0", 2-len(frac))
	}
	return whole + "." + frac[:2]
}

// export is only offered once something has a timestamp
func Exportable(lines []lyrics.Line) bool {
	for _, line := range lines {
		if line.Synced() {
			return true
		}
	}
	return false
}

// output name for the audio file: extension swapped for .lrc, or appended
// when there is none
func SuggestedFileName(audioFileName string) string {
	if audioFileName == "" {
		return DefaultFileName
	}
	return trimExt(audioFileName) + Extension
}

// leading dots of the base name are not an extension, so ".track" stays whole
func trimExt(path string) string {
	base := filepath.Base(path)
	stripped := strings.TrimLeft(base, ".")
	ext := filepath.Ext(stripped)
	if ext == "" {
		return path
	}
	return strings.TrimSuffix(path, ext)
}
