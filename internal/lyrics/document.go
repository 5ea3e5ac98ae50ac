package lyrics

import (
	"fmt"
	"strings"
)

// identifies a line for the lifetime of a document, independent of its position
type LineID int64

// single lyric row. An empty Timestamp means the line is not synced yet.
type Line struct {
	ID        LineID
	Text      string
	Timestamp string
}

func (l Line) Synced() bool {
	return l.Timestamp != ""
}

// value typed into a row but not yet written to the document.
// Nil fields are left untouched.
type Edit struct {
	ID        LineID
	Text      *string
	Timestamp *string
}

func TextEdit(id LineID, text string) Edit {
	return Edit{ID: id, Text: &text}
}

func TimestampEdit(id LineID, timestamp string) Edit {
	return Edit{ID: id, Timestamp: &timestamp}
}

// ordered lyric lines of one sync session.
// Every method either completes or leaves the document unchanged.
type Document struct {
	lines  []Line
	nextID LineID
}

func NewDocument() *Document {
	return &Document{}
}

// replaces the document with one unsynced line per non-blank line of raw
func (d *Document) LoadFromText(raw string) {
	d.lines = d.lines[:0:0]
	for _, text := range SplitLines(raw) {
		d.lines = append(d.lines, d.newLine(text, ""))
	}
}

// replaces the document with the given lines, assigning fresh IDs
func (d *Document) Replace(lines []Line) {
	d.lines = make([]Line, 0, len(lines))
	for _, l := range lines {
		d.lines = append(d.lines, d.newLine(l.Text, l.Timestamp))
	}
}

// splits text into trimmed, non-empty lines
func SplitLines(raw string) []string {
	raw = strings.TrimPrefix(raw, "\ufeff")

	var out []string
	for _, line := range strings.FieldsFunc(raw, isLineBreak) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// line boundaries: \n, \r, vertical tab, form feed, the file/group/record
// separators, NEL and the Unicode line and paragraph separators
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

func (d *Document) Len() int {
	return len(d.lines)
}

// snapshot of the current lines; callers may modify it freely
func (d *Document) GetLines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// position of the line with the given ID, or -1
func (d *Document) IndexOf(id LineID) int {
	for i, l := range d.lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func (d *Document) Line(index int) (Line, error) {
	if err := d.checkIndex(index); err != nil {
		return Line{}, err
	}
	return d.lines[index], nil
}

func (d *Document) SetLineText(index int, text string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.lines[index].Text = text
	return nil
}

// stores timestamp as typed; format is checked only at export
func (d *Document) SetLineTimestamp(index int, timestamp string) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.lines[index].Timestamp = timestamp
	return nil
}

// writes pending edits, all or nothing
func (d *Document) ApplyEdits(edits ...Edit) error {
	positions, err := d.resolve(edits)
	if err != nil {
		return err
	}
	d.apply(edits, positions)
	return nil
}

// applies pending, then stamps the line at index with the playback position
func (d *Document) CaptureTimestamp(index int, seconds float64, pending ...Edit) error {
	positions, err := d.resolve(pending)
	if err != nil {
		return err
	}
	if err := d.checkIndex(index); err != nil {
		return err
	}
	formatted, err := FormatSample(seconds)
	if err != nil {
		return err
	}

	d.apply(pending, positions)
	d.lines[index].Timestamp = formatted
	return nil
}

// applies pending, then inserts a new line before index (index == Len appends).
// Returns the new line's ID.
func (d *Document) InsertLine(index int, text, timestamp string, pending ...Edit) (LineID, error) {
	positions, err := d.resolve(pending)
	if err != nil {
		return 0, err
	}
	if index < 0 || index > len(d.lines) {
		return 0, &IndexError{Index: index, Len: len(d.lines) + 1}
	}

	d.apply(pending, positions)

	line := d.newLine(text, timestamp)
	d.lines = append(d.lines, Line{})
	copy(d.lines[index+1:], d.lines[index:])
	d.lines[index] = line
	return line.ID, nil
}

// applies pending, then removes the line at index.
// Edits aimed at the removed line are harmless.
func (d *Document) DeleteLine(index int, pending ...Edit) error {
	positions, err := d.resolve(pending)
	if err != nil {
		return err
	}
	if err := d.checkIndex(index); err != nil {
		return err
	}

	d.apply(pending, positions)
	d.lines = append(d.lines[:index], d.lines[index+1:]...)
	return nil
}

func (d *Document) newLine(text, timestamp string) Line {
	d.nextID++
	return Line{ID: d.nextID, Text: text, Timestamp: timestamp}
}

func (d *Document) checkIndex(index int) error {
	if index < 0 || index >= len(d.lines) {
		return &IndexError{Index: index, Len: len(d.lines)}
	}
	return nil
}

func (d *Document) resolve(edits []Edit) ([]int, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	positions := make([]int, len(edits))
	for i, e := range edits {
		pos := d.IndexOf(e.ID)
		if pos < 0 {
			return nil, fmt.Errorf("%w: %d", ErrUnknownLine, e.ID)
		}
		positions[i] = pos
	}
	return positions, nil
}

func (d *Document) apply(edits []Edit, positions []int) {
	for i, e := range edits {
		if e.Text != nil {
			d.lines[positions[i]].Text = *e.Text
		}
		if e.Timestamp != nil {
			d.lines[positions[i]].Timestamp = *e.Timestamp
		}
	}
}
