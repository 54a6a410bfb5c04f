//go:build cgo && !nospeaker

package audio

import (
	"os"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/infra/audio/event"
)

// SpeakerEngine plays MP3 files on the system audio device.
type SpeakerEngine struct {
	mu       sync.Mutex
	settings Settings

	// Loaded track
	path     string
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	paused   bool

	// Completion tracking. The speaker callback runs with the speaker lock
	// held, so it only touches atomics and never takes mu.
	generation atomic.Uint64
	running    atomic.Bool
	armed      atomic.Bool

	events chan event.Event
}

// NewSpeakerEngine initialises the speaker and returns an engine bound to it.
func NewSpeakerEngine(settings Settings) (*SpeakerEngine, error) {
	if err := speaker.Init(settings.Rate(), settings.BufferSize()); err != nil {
		return nil, errors.Wrap(err, "failed to initialize speaker")
	}
	zlog.Debug().Msgf("audio: speaker initialized: rate=%d buffer=%d", settings.SampleRate, settings.BufferSize())

	return &SpeakerEngine{
		settings: settings,
		events:   make(chan event.Event, eventBuffer),
	}, nil
}

// Load decodes the MP3 at path, releasing any previously loaded track.
func (e *SpeakerEngine) Load(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
	e.releaseLocked()

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "failed to decode %s", path)
	}

	e.path = path
	e.streamer = streamer
	e.format = format
	zlog.Debug().Msgf("audio: loaded path=%s rate=%d length=%v", path, format.SampleRate, format.SampleRate.D(streamer.Len()))
	return nil
}

// Play starts the loaded track from the beginning.
func (e *SpeakerEngine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.streamer == nil {
		return ErrNotLoaded
	}

	e.stopLocked()
	if err := e.streamer.Seek(0); err != nil {
		return errors.Wrapf(err, "failed to rewind %s", e.path)
	}

	var s beep.Streamer = e.streamer
	if e.format.SampleRate != e.settings.Rate() {
		s = beep.Resample(e.settings.ResampleQuality, e.format.SampleRate, e.settings.Rate(), s)
	}

	e.ctrl = &beep.Ctrl{Streamer: s, Paused: false}
	e.paused = false

	gen := e.generation.Add(1)
	path := e.path
	e.running.Store(true)
	speaker.Play(beep.Seq(e.ctrl, beep.Callback(func() {
		e.finish(gen, path)
	})))
	return nil
}

// Pause pauses the current track.
func (e *SpeakerEngine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl == nil || !e.running.Load() {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	e.paused = true
}

// Unpause resumes a paused track.
func (e *SpeakerEngine) Unpause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctrl == nil || !e.running.Load() {
		return
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	e.paused = false
}

// Stop halts playback and discards any armed notification.
func (e *SpeakerEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
}

// Busy reports whether the track is audibly playing.
func (e *SpeakerEngine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.running.Load() && !e.paused
}

// NotifyOnEnd arms the completion notification for the current track.
func (e *SpeakerEngine) NotifyOnEnd() {
	e.armed.Store(true)
}

// Events returns the notification queue.
func (e *SpeakerEngine) Events() <-chan event.Event {
	return e.events
}

// Close stops playback, releases the track and closes the speaker.
func (e *SpeakerEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()
	e.releaseLocked()
	speaker.Close()
	zlog.Debug().Msg("audio: speaker closed")
	return nil
}

// stopLocked must be called with mu held.
func (e *SpeakerEngine) stopLocked() {
	// Invalidate the pending callback before clearing the speaker.
	e.generation.Add(1)
	e.armed.Store(false)
	if e.running.Swap(false) {
		speaker.Clear()
	}
	e.ctrl = nil
	e.paused = false
}

// releaseLocked must be called with mu held.
func (e *SpeakerEngine) releaseLocked() {
	if e.streamer != nil {
		if err := e.streamer.Close(); err != nil {
			zlog.Warn().Msgf("audio: failed to close stream: path=%s error=%v", e.path, err)
		}
	}
	e.streamer = nil
	e.path = ""
}

// finish runs on the speaker goroutine when the sequence is drained.
func (e *SpeakerEngine) finish(gen uint64, path string) {
	if e.generation.Load() != gen {
		return
	}
	e.running.Store(false)
	if e.armed.CompareAndSwap(true, false) {
		publish(e.events, event.Event{Type: event.TrackEnded, Path: path})
	}
}
