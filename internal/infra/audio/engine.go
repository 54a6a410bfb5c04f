// Package audio provides audio engine adapters built on gopxl/beep.
package audio

import (
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/infra/audio/event"
)

// Supported drivers.
const (
	DriverSpeaker = "speaker" // System audio output via beep/speaker
	DriverNull    = "null"    // Silent wall-clock simulation
)

var (
	// ErrNotLoaded is returned by Play when no track has been loaded.
	ErrNotLoaded = errors.New("no track loaded")
	// ErrSpeakerUnavailable is returned when the binary was built without the speaker driver.
	ErrSpeakerUnavailable = errors.New("speaker driver not available in this build")
)

// eventBuffer bounds pending notifications; only one completion is armed at a time.
const eventBuffer = 4

// Engine is an audio output holding a single playback slot.
type Engine interface {
	// Load decodes the track at path, replacing any previously loaded one.
	Load(path string) error
	// Play starts the loaded track from the beginning.
	Play() error
	Pause()
	Unpause()
	// Stop halts playback. An armed completion notification is discarded.
	Stop()
	// Busy reports whether audio is currently being produced. False while paused.
	Busy() bool
	// NotifyOnEnd arms a one-shot event.TrackEnded for the current track.
	NotifyOnEnd()
	// Events returns the notification queue. It is never closed.
	Events() <-chan event.Event
	// Close stops playback and releases the output device.
	Close() error
}

// Open creates and initialises the engine for the given driver.
func Open(driver string, settings map[string]any) (Engine, error) {
	s, err := DecodeSettings(settings)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid settings for audio driver %s", driver)
	}
	zlog.Debug().Msgf("audio: opening driver=%s settings=%+v", driver, *s)

	switch driver {
	case DriverSpeaker:
		e, err := NewSpeakerEngine(*s)
		if err != nil {
			return nil, err
		}
		return e, nil
	case DriverNull:
		return NewNullEngine(), nil
	default:
		return nil, errors.Newf("unsupported audio driver: %s", driver)
	}
}

// publish sends an event without blocking.
func publish(ch chan event.Event, e event.Event) {
	select {
	case ch <- e:
	default:
		zlog.Warn().Msgf("audio: event queue full, dropping event=%s path=%s", e.Type, e.Path)
	}
}
