package lyrics

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timestampRegex = regexp.MustCompile(`^([0-9]{1,2}):([0-9]{2})(?:\.([0-9]{1,3}))?$`)

// parsed mm:ss[.fff] value
type Timestamp struct {
	Minutes int
	Seconds int
	Millis  int
}

// reports whether s may appear in an exported LRC line.
// Only the shape is checked, so "99:99" passes.
func IsValidTimestamp(s string) bool {
	return timestampRegex.MatchString(s)
}

// parses a string accepted by IsValidTimestamp
func ParseTimestamp(s string) (Timestamp, error) {
	matches := timestampRegex.FindStringSubmatch(s)
	if matches == nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: expected mm:ss or mm:ss.fff", s)
	}

	minutes, _ := strconv.Atoi(matches[1])
	seconds, _ := strconv.Atoi(matches[2])

	var millis int
	if frac := matches[3]; frac != "" {
		// ".5" is half a second, not five milliseconds
		millis, _ = strconv.Atoi(frac + strings.Repeat("0", 3-len(frac)))
	}

	return Timestamp{Minutes: minutes, Seconds: seconds, Millis: millis}, nil
}

func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.Minutes)*time.Minute +
		time.Duration(t.Seconds)*time.Second +
		time.Duration(t.Millis)*time.Millisecond
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d.%03d", t.Minutes, t.Seconds, t.Millis)
}

// renders a playback position as MM:SS.mmm.
// Minutes are not wrapped, so positions past 99 minutes produce three digits.
func FormatSample(seconds float64) (string, error) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "", ErrInvalidSample
	}

	minutes := int64(math.Floor(seconds / 60))
	secs := int64(math.Floor(math.Mod(seconds, 60)))
	millis := int64(math.Floor(math.Mod(seconds, 1) * 1000))

	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis), nil
}
