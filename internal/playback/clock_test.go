package playback

import (
	"testing"
	"time"
)

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestClock(duration time.Duration) (*Clock, *fakeTime) {
	ft := &fakeTime{t: time.Unix(1700000000, 0)}
	c := NewClock(duration)
	c.now = ft.now
	return c, ft
}

func TestClockPlayPause(t *testing.T) {
	c, ft := newTestClock(0)

	if c.Position() != 0 {
		t.Fatalf("initial position = %v, want 0", c.Position())
	}

	c.Play()
	ft.advance(1500 * time.Millisecond)
	if got := c.Position(); got != 1.5 {
		t.Errorf("position while playing = %v, want 1.5", got)
	}

	c.Pause()
	ft.advance(10 * time.Second)
	if got := c.Position(); got != 1.5 {
		t.Errorf("position while paused = %v, want 1.5", got)
	}

	c.Play()
	ft.advance(500 * time.Millisecond)
	if got := c.Position(); got != 2.0 {
		t.Errorf("position after resume = %v, want 2.0", got)
	}
}

func TestClockSeek(t *testing.T) {
	c, ft := newTestClock(2 * time.Minute)

	if err := c.Seek(75.25); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	if got := c.Position(); got != 75.25 {
		t.Errorf("position = %v, want 75.25", got)
	}

	c.Play()
	ft.advance(time.Second)
	if err := c.Seek(10); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	ft.advance(time.Second)
	if got := c.Position(); got != 11 {
		t.Errorf("position = %v, want 11", got)
	}

	if err := c.Seek(-1); err == nil {
		t.Error("expected error for negative seek")
	}
	if err := c.Seek(121); err == nil {
		t.Error("expected error for seek past the end")
	}
}

func TestClockStopsAtDuration(t *testing.T) {
	c, ft := newTestClock(3 * time.Second)

	c.Play()
	ft.advance(5 * time.Second)

	if got := c.Position(); got != 3 {
		t.Errorf("position = %v, want 3", got)
	}
	if c.Playing() {
		t.Error("clock should report stopped at end of track")
	}

	// playing again from the end restarts the track
	c.Pause()
	c.Play()
	if got := c.Position(); got != 0 {
		t.Errorf("position after restart = %v, want 0", got)
	}
}

func TestClockReplaysAfterRunningOut(t *testing.T) {
	c, ft := newTestClock(10 * time.Second)

	c.Play()
	ft.advance(15 * time.Second)

	c.Play()
	ft.advance(2 * time.Second)

	if got := c.Position(); got != 2 {
		t.Errorf("position after replay = %v, want 2", got)
	}
	if !c.Playing() {
		t.Error("clock should be playing after replay")
	}
}

func TestClockSeekAfterRunningOut(t *testing.T) {
	c, ft := newTestClock(10 * time.Second)

	c.Play()
	ft.advance(12 * time.Second)
	if err := c.Seek(4); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	ft.advance(time.Second)

	if got := c.Position(); got != 5 {
		t.Errorf("position = %v, want 5", got)
	}
}
