package lyrics

// line whose timestamp is earlier than a previous synced line
type OrderWarning struct {
	Index    int
	Previous int
}

// finds synced lines that go backwards in time.
// Out-of-order lines are allowed, this is only advisory.
func NonMonotonic(lines []Line) []OrderWarning {
	var warnings []OrderWarning
	prev := -1
	var prevTS Timestamp

	for i, l := range lines {
		ts, err := ParseTimestamp(l.Timestamp)
		if err != nil {
			continue
		}
		if prev >= 0 && ts.Duration() < prevTS.Duration() {
			warnings = append(warnings, OrderWarning{Index: i, Previous: prev})
		}
		prev = i
		prevTS = ts
	}

	return warnings
}

// lines with a non-empty timestamp that export would drop
func Malformed(lines []Line) []int {
	var out []int
	for i, l := range lines {
		if l.Timestamp != "" && !IsValidTimestamp(l.Timestamp) {
			out = append(out, i)
		}
	}
	return out
}
