package lyrics

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownLine   = errors.New("unknown line id")
	ErrInvalidSample = errors.New("playback position must be a finite, non-negative number of seconds")
)

// returned when an index does not address a line
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of range (document is empty)", e.Index)
	}
	return fmt.Sprintf("index %d out of range (0-%d)", e.Index, e.Len-1)
}
