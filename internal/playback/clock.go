package playback

import (
	"fmt"
	"math"
	"time"
)

// supplies the current playback position in seconds
type Source interface {
	Position() float64
}

// play/pause/seek position tracker standing in for the audio player.
// Not safe for concurrent use.
type Clock struct {
	duration time.Duration
	offset   time.Duration
	started  time.Time
	playing  bool
	now      func() time.Time
}

// duration caps the position; zero means unknown
func NewClock(duration time.Duration) *Clock {
	return &Clock{duration: duration, now: time.Now}
}

// starts the clock; a clock that has reached the end restarts from zero
func (c *Clock) Play() {
	if c.playing && !c.finished() {
		return
	}
	if c.finished() {
		c.offset = 0
		c.playing = false
	}
	c.started = c.now()
	c.playing = true
}

func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	c.offset = c.elapsed()
	c.playing = false
}

func (c *Clock) Playing() bool {
	return c.playing && !c.finished()
}

func (c *Clock) Duration() time.Duration {
	return c.duration
}

// moves to seconds, keeping the play state
func (c *Clock) Seek(seconds float64) error {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return fmt.Errorf("invalid seek position %v", seconds)
	}

	target := time.Duration(seconds * float64(time.Second))
	if c.duration > 0 && target > c.duration {
		return fmt.Errorf(
			"seek position %.3fs is past the end of the track (%s)",
			seconds,
			c.duration,
		)
	}

	c.offset = target
	if c.playing {
		c.started = c.now()
	}
	return nil
}

func (c *Clock) Position() float64 {
	return c.elapsed().Seconds()
}

func (c *Clock) elapsed() time.Duration {
	pos := c.offset
	if c.playing {
		pos += c.now().Sub(c.started)
	}
	if c.duration > 0 && pos > c.duration {
		pos = c.duration
	}
	return pos
}

func (c *Clock) finished() bool {
	return c.duration > 0 && c.elapsed() >= c.duration
}
