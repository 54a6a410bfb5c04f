package audio

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/mp3"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/infra/audio/event"
)

// ProbeFunc returns the playing time of the track at path.
type ProbeFunc func(path string) (time.Duration, error)

type nullState int

const (
	nullIdle nullState = iota
	nullPlaying
	nullPaused
)

// NullEngine simulates playback on the wall clock without an audio device.
type NullEngine struct {
	mu sync.Mutex

	probe      ProbeFunc
	resolution time.Duration // Timer polling interval

	path      string
	duration  time.Duration
	loaded    bool
	state     nullState
	startTime time.Time
	remaining time.Duration

	timerCancel func()
	generation  uint64
	armed       bool

	events chan event.Event
}

// NullOption configures a NullEngine.
type NullOption func(*NullEngine)

// WithProbe replaces the MP3 length probe.
func WithProbe(probe ProbeFunc) NullOption {
	return func(e *NullEngine) {
		e.probe = probe
	}
}

// WithResolution sets how often the end-of-track timer checks the clock.
func WithResolution(d time.Duration) NullOption {
	return func(e *NullEngine) {
		e.resolution = d
	}
}

// NewNullEngine creates a silent engine.
func NewNullEngine(opts ...NullOption) *NullEngine {
	e := &NullEngine{
		probe:      ProbeMP3,
		resolution: 10 * time.Millisecond,
		events:     make(chan event.Event, eventBuffer),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProbeMP3 decodes the MP3 header and returns the track length.
func ProbeMP3(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open %s", path)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return 0, errors.Wrapf(err, "failed to decode %s", path)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// Load probes the track length, replacing any previously loaded track.
func (e *NullEngine) Load(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	d, err := e.probe(path)
	if err != nil {
		e.loaded = false
		return err
	}

	e.path = path
	e.duration = d
	e.loaded = true
	zlog.Debug().Msgf("audio: null engine loaded path=%s duration=%v", path, d)
	return nil
}

// Play starts the simulated track from the beginning.
func (e *NullEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.loaded {
		return ErrNotLoaded
	}

	e.stopLocked()
	e.remaining = e.duration
	e.startLocked()
	return nil
}

// Pause freezes the simulated position.
func (e *NullEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != nullPlaying {
		return
	}
	e.cancelTimerLocked()
	e.remaining -= toWallTime(time.Now()).Sub(e.startTime)
	if e.remaining < 0 {
		e.remaining = 0
	}
	e.state = nullPaused
}

// Unpause continues from the frozen position.
func (e *NullEngine) Unpause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != nullPaused {
		return
	}
	e.startLocked()
}

// Stop halts playback and discards any armed notification.
func (e *NullEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
}

// Busy reports whether the simulated track is playing.
func (e *NullEngine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state == nullPlaying
}

// NotifyOnEnd arms the completion notification.
func (e *NullEngine) NotifyOnEnd() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.armed = true
}

// Events returns the notification queue.
func (e *NullEngine) Events() <-chan event.Event {
	return e.events
}

// Close stops playback.
func (e *NullEngine) Close() error {
	e.Stop()
	return nil
}

// Remaining returns the simulated time left in the current track.
func (e *NullEngine) Remaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case nullPlaying:
		left := e.remaining - toWallTime(time.Now()).Sub(e.startTime)
		if left < 0 {
			return 0
		}
		return left
	case nullPaused:
		return e.remaining
	default:
		return 0
	}
}

// startLocked must be called with mu held.
func (e *NullEngine) startLocked() {
	e.generation++
	gen := e.generation
	e.startTime = toWallTime(time.Now())
	e.state = nullPlaying
	e.timerCancel = e.startWallClockTimer(e.remaining, func() {
		e.finish(gen)
	})
}

// stopLocked must be called with mu held.
func (e *NullEngine) stopLocked() {
	e.cancelTimerLocked()
	e.generation++
	e.armed = false
	e.state = nullIdle
	e.remaining = 0
}

func (e *NullEngine) cancelTimerLocked() {
	if e.timerCancel != nil {
		e.timerCancel()
		e.timerCancel = nil
	}
}

func (e *NullEngine) finish(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation || e.state != nullPlaying {
		return
	}
	e.timerCancel = nil
	e.state = nullIdle
	e.remaining = 0
	if e.armed {
		e.armed = false
		publish(e.events, event.Event{Type: event.TrackEnded, Path: e.path})
	}
}

// startWallClockTimer triggers callback once duration has elapsed on the wall clock.
// Returns a cancel function.
func (e *NullEngine) startWallClockTimer(duration time.Duration, callback func()) func() {
	ctx, cancel := context.WithCancel(context.Background())
	resolution := e.resolution

	go func() {
		endTime := toWallTime(time.Now()).Add(duration)
		ticker := time.NewTicker(resolution)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !toWallTime(time.Now()).Before(endTime) {
					callback()
					return
				}
			}
		}
	}()

	return cancel
}

// toWallTime strips the monotonic clock reading.
func toWallTime(t time.Time) time.Time {
	return time.Unix(t.Unix(), int64(t.Nanosecond()))
}
