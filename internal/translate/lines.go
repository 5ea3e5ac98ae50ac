package translate

import (
	"strings"

	"github.com/mgpai22/lyricsync/internal/lyrics"
)

// separates translation and original text in bilingual output
const OverlaySeparator = " / "

// builds one item per line with text; blank lines (instrumental breaks) are skipped
func ItemsFromLines(lines []lyrics.Line) []TranslationItem {
	var items []TranslationItem
	for i, l := range lines {
		if strings.TrimSpace(l.Text) == "" {
			continue
		}
		items = append(items, TranslationItem{Index: i, Text: l.Text})
	}
	return items
}

// returns a copy of lines with translated text; timestamps are untouched.
// Results pointing outside lines are reported back as skipped indices.
func ApplyResults(
	lines []lyrics.Line,
	results []TranslationResult,
	overlay bool,
) ([]lyrics.Line, []int) {
	out := make([]lyrics.Line, len(lines))
	copy(out, lines)

	var skipped []int
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(out) {
			skipped = append(skipped, r.Index)
			continue
		}
		text := strings.TrimSpace(r.Text)
		if overlay {
			text = text + OverlaySeparator + lines[r.Index].Text
		}
		out[r.Index].Text = text
	}

	return out, skipped
}
