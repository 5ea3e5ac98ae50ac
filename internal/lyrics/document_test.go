package lyrics

import (
	"errors"
	"testing"
)

func texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func newLoaded(t *testing.T, raw string) *Document {
	t.Helper()
	doc := NewDocument()
	doc.LoadFromText(raw)
	return doc
}

func TestLoadFromText(t *testing.T) {
	doc := newLoaded(t, "a\n\nb\n  \nc")

	lines := doc.GetLines()
	if got := texts(lines); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Fatalf("texts = %q, want [a b c]", got)
	}
	for i, l := range lines {
		if l.Synced() {
			t.Errorf("line %d: expected unset timestamp, got %q", i, l.Timestamp)
		}
	}
}

func TestLoadFromTextTrimsAndHandlesLineEndings(t *testing.T) {
	doc := newLoaded(t, "\ufeff  first line \r\nsecond\r\r\n\tthird\t")

	want := []string{"first line", "second", "third"}
	if got := texts(doc.GetLines()); !equalStrings(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}
}

func TestLoadFromTextSplitsOnAllLineBoundaries(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"vertical tab", "a\vb"},
		{"form feed", "a\fb"},
		{"file separator", "a\x1cb"},
		{"group separator", "a\x1db"},
		{"record separator", "a\x1eb"},
		{"next line", "a\u0085b"},
		{"line separator", "a\u2028b"},
		{"paragraph separator", "a\u2029b"},
		{"crlf", "a\r\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := newLoaded(t, tt.raw)
			want := []string{"a", "b"}
			if got := texts(doc.GetLines()); !equalStrings(got, want) {
				t.Errorf("texts = %q, want %q", got, want)
			}
		})
	}
}

func TestLoadFromTextDiscardsPreviousState(t *testing.T) {
	doc := newLoaded(t, "one\ntwo")
	if err := doc.SetLineTimestamp(0, "00:01.00"); err != nil {
		t.Fatalf("SetLineTimestamp failed: %v", err)
	}
	oldID := doc.GetLines()[0].ID

	doc.LoadFromText("three")

	lines := doc.GetLines()
	if len(lines) != 1 || lines[0].Text != "three" || lines[0].Synced() {
		t.Fatalf("unexpected lines after reload: %+v", lines)
	}
	if doc.IndexOf(oldID) != -1 {
		t.Error("IDs from the previous load must not resolve")
	}
}

func TestSetLineTextAndTimestamp(t *testing.T) {
	doc := newLoaded(t, "a\nb")

	if err := doc.SetLineText(1, "changed"); err != nil {
		t.Fatalf("SetLineText failed: %v", err)
	}
	if err := doc.SetLineTimestamp(1, "not a time"); err != nil {
		t.Fatalf("SetLineTimestamp should accept free-form text: %v", err)
	}

	l, err := doc.Line(1)
	if err != nil {
		t.Fatalf("Line failed: %v", err)
	}
	if l.Text != "changed" || l.Timestamp != "not a time" {
		t.Errorf("got %+v", l)
	}
}

func TestIndexErrors(t *testing.T) {
	doc := newLoaded(t, "a\nb")

	checks := map[string]error{
		"SetLineText":      doc.SetLineText(2, "x"),
		"SetLineTimestamp": doc.SetLineTimestamp(-1, "00:01"),
		"CaptureTimestamp": doc.CaptureTimestamp(5, 1.0),
		"DeleteLine":       doc.DeleteLine(2),
	}
	_, insertErr := doc.InsertLine(3, "x", "")
	checks["InsertLine"] = insertErr

	for name, err := range checks {
		var idxErr *IndexError
		if !errors.As(err, &idxErr) {
			t.Errorf("%s: expected *IndexError, got %v", name, err)
		}
	}

	if got := texts(doc.GetLines()); !equalStrings(got, []string{"a", "b"}) {
		t.Errorf("failed operations mutated the document: %q", got)
	}
}

func TestCaptureTimestamp(t *testing.T) {
	doc := newLoaded(t, "a\nb")

	if err := doc.CaptureTimestamp(1, 75.1234); err != nil {
		t.Fatalf("CaptureTimestamp failed: %v", err)
	}
	if got := doc.GetLines()[1].Timestamp; got != "01:15.123" {
		t.Errorf("timestamp = %q, want %q", got, "01:15.123")
	}

	if err := doc.CaptureTimestamp(0, -1); !errors.Is(err, ErrInvalidSample) {
		t.Errorf("expected ErrInvalidSample, got %v", err)
	}
	if doc.GetLines()[0].Synced() {
		t.Error("rejected capture must not write a timestamp")
	}
}

func TestInsertLine(t *testing.T) {
	doc := newLoaded(t, "a\nc")

	id, err := doc.InsertLine(1, "b", "00:02.00")
	if err != nil {
		t.Fatalf("InsertLine failed: %v", err)
	}
	if _, err := doc.InsertLine(doc.Len(), "d", ""); err != nil {
		t.Fatalf("InsertLine at end failed: %v", err)
	}

	want := []string{"a", "b", "c", "d"}
	if got := texts(doc.GetLines()); !equalStrings(got, want) {
		t.Fatalf("texts = %q, want %q", got, want)
	}
	if doc.IndexOf(id) != 1 {
		t.Errorf("IndexOf(new id) = %d, want 1", doc.IndexOf(id))
	}
	if doc.GetLines()[1].Timestamp != "00:02.00" {
		t.Errorf("inserted timestamp not stored")
	}
}

func TestInsertThenDeleteRoundTrip(t *testing.T) {
	doc := newLoaded(t, "a\nb\nc")
	_ = doc.SetLineTimestamp(0, "00:01.00")
	_ = doc.SetLineTimestamp(2, "bad")

	before := doc.GetLines()

	if _, err := doc.InsertLine(1, "new", "00:09.99"); err != nil {
		t.Fatalf("InsertLine failed: %v", err)
	}
	if err := doc.DeleteLine(1); err != nil {
		t.Fatalf("DeleteLine failed: %v", err)
	}

	after := doc.GetLines()
	if len(after) != len(before) {
		t.Fatalf("len = %d, want %d", len(after), len(before))
	}
	for i := range before {
		if before[i].Text != after[i].Text || before[i].Timestamp != after[i].Timestamp {
			t.Errorf("line %d: got (%q, %q), want (%q, %q)",
				i, after[i].Text, after[i].Timestamp, before[i].Text, before[i].Timestamp)
		}
	}
}

func TestIDsSurviveStructuralChanges(t *testing.T) {
	doc := newLoaded(t, "a\nb\nc")
	cID := doc.GetLines()[2].ID

	if err := doc.DeleteLine(0); err != nil {
		t.Fatalf("DeleteLine failed: %v", err)
	}
	if doc.IndexOf(cID) != 1 {
		t.Errorf("after delete IndexOf(c) = %d, want 1", doc.IndexOf(cID))
	}

	if _, err := doc.InsertLine(0, "z", ""); err != nil {
		t.Fatalf("InsertLine failed: %v", err)
	}
	if doc.IndexOf(cID) != 2 {
		t.Errorf("after insert IndexOf(c) = %d, want 2", doc.IndexOf(cID))
	}
}

func TestPendingEditsAppliedBeforeStructuralOps(t *testing.T) {
	doc := newLoaded(t, "a\nb\nc")
	lines := doc.GetLines()

	// an edit typed into row c must still land on c after row a is deleted
	err := doc.DeleteLine(0, TextEdit(lines[2].ID, "c edited"))
	if err != nil {
		t.Fatalf("DeleteLine failed: %v", err)
	}

	want := []string{"b", "c edited"}
	if got := texts(doc.GetLines()); !equalStrings(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}

	err = doc.CaptureTimestamp(0, 5.0, TimestampEdit(lines[2].ID, "00:10"))
	if err != nil {
		t.Fatalf("CaptureTimestamp failed: %v", err)
	}
	got := doc.GetLines()
	if got[0].Timestamp != "00:05.000" || got[1].Timestamp != "00:10" {
		t.Errorf("timestamps = (%q, %q)", got[0].Timestamp, got[1].Timestamp)
	}
}

func TestPendingEditsAreAllOrNothing(t *testing.T) {
	doc := newLoaded(t, "a\nb")
	first := doc.GetLines()[0].ID

	err := doc.ApplyEdits(TextEdit(first, "changed"), TextEdit(LineID(999), "ghost"))
	if !errors.Is(err, ErrUnknownLine) {
		t.Fatalf("expected ErrUnknownLine, got %v", err)
	}
	if doc.GetLines()[0].Text != "a" {
		t.Error("edits were partially applied")
	}

	_, err = doc.InsertLine(5, "x", "", TextEdit(first, "changed"))
	var idxErr *IndexError
	if !errors.As(err, &idxErr) {
		t.Fatalf("expected *IndexError, got %v", err)
	}
	if doc.GetLines()[0].Text != "a" {
		t.Error("pending edits applied despite failed insert")
	}
}

func TestGetLinesReturnsSnapshot(t *testing.T) {
	doc := newLoaded(t, "a")
	lines := doc.GetLines()
	lines[0].Text = "mutated"

	if doc.GetLines()[0].Text != "a" {
		t.Error("GetLines exposed internal storage")
	}
}

func TestNonMonotonic(t *testing.T) {
	lines := []Line{
		{Text: "a", Timestamp: "00:05.00"},
		{Text: "b", Timestamp: ""},
		{Text: "c", Timestamp: "00:03.00"},
		{Text: "d", Timestamp: "oops"},
		{Text: "e", Timestamp: "00:04"},
	}

	warnings := NonMonotonic(lines)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	if warnings[0].Index != 2 || warnings[0].Previous != 0 {
		t.Errorf("warning = %+v, want {Index:2 Previous:0}", warnings[0])
	}

	if got := Malformed(lines); len(got) != 1 || got[0] != 3 {
		t.Errorf("Malformed = %v, want [3]", got)
	}
}
