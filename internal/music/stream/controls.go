package stream

import (
	"sync"
	"sync/atomic"
)

// Controls carries the live playback knobs for a single track: a cancel
// signal plus pause and volume flags the streaming loop polls every frame.
type Controls struct {
	stop   chan struct{}
	once   sync.Once
	paused atomic.Bool
	volume atomic.Int32 // percent, 0-200
}

// NewControls builds Controls with the given starting volume.
func NewControls(volume int) *Controls {
	c := &Controls{stop: make(chan struct{})}
	c.SetVolume(volume)
	return c
}

// Cancel stops playback. Safe to call more than once.
func (c *Controls) Cancel() {
	c.once.Do(func() { close(c.stop) })
}

// Done returns a channel closed when playback is cancelled.
func (c *Controls) Done() <-chan struct{} { return c.stop }

func (c *Controls) SetPaused(p bool) { c.paused.Store(p) }
func (c *Controls) Paused() bool     { return c.paused.Load() }

// SetVolume clamps to 0-200 percent.
func (c *Controls) SetVolume(v int) {
	if v < 0 {
		v = 0
	}
	if v > 200 {
		v = 200
	}
	c.volume.Store(int32(v))
}

func (c *Controls) Volume() int { return int(c.volume.Load()) }
