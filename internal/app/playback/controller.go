package playback

import (
	"context"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/console"
	"github.com/osa030/tunebox/internal/domain/track"
	"github.com/osa030/tunebox/internal/infra/audio/event"
)

// DefaultTickInterval bounds how often the loop polls the engine.
const DefaultTickInterval = 50 * time.Millisecond

// User-facing messages.
const (
	msgFileNotFound   = "File not found!"
	msgCommands       = "Commands: [P]ause, [R]esume, [S]top"
	msgPaused         = "Paused"
	msgAlreadyPaused  = "Already paused"
	msgResumed        = "Resumed"
	msgNotPaused      = "Not paused"
	msgStopped        = "Stopped"
	msgInvalidCommand = "Invalid command. Use [P]ause, [R]esume, or [S]top"
	msgSongFinished   = "\nSong finished!"
	prompt            = "> "
)

// Engine is the audio playback slot driven by the controller.
type Engine interface {
	Load(path string) error
	Play() error
	Pause()
	Unpause()
	Stop()
	Busy() bool
	NotifyOnEnd()
	Events() <-chan event.Event
}

// Config holds controller configuration.
type Config struct {
	TickInterval time.Duration // Sleep between loop iterations
}

// Controller runs the interactive pause/resume/stop loop for one track at a time.
type Controller struct {
	engine  Engine
	console *console.Console
	config  Config

	sessionID string
	state     State
}

// NewController creates a new playback controller.
func NewController(engine Engine, con *console.Console, config Config) *Controller {
	if config.TickInterval <= 0 {
		config.TickInterval = DefaultTickInterval
	}
	return &Controller{
		engine:  engine,
		console: con,
		config:  config,
		state:   StateEnded,
	}
}

// Run plays the track and processes commands until it finishes or is stopped.
// Expected end states return a nil error. A missing file returns OutcomeSkipped
// without touching the engine. Closed input stops playback and returns
// console.ErrInputClosed.
func (c *Controller) Run(ctx context.Context, t track.Track) (Outcome, error) {
	if _, err := os.Stat(t.Path); err != nil {
		zlog.Warn().Msgf("playback: file not found: path=%s", t.Path)
		c.console.Println(msgFileNotFound)
		return OutcomeSkipped, nil
	}

	c.sessionID = uuid.New().String()
	log := zlog.With().Str("session", c.sessionID).Logger()

	// Discard notifications left over from a previous session.
	c.finished()

	if err := c.engine.Load(t.Path); err != nil {
		return OutcomeSkipped, errors.Wrapf(err, "failed to load %s", t.Name)
	}
	if err := c.engine.Play(); err != nil {
		return OutcomeSkipped, errors.Wrapf(err, "failed to play %s", t.Name)
	}
	c.engine.NotifyOnEnd()
	c.state = StatePlaying

	log.Info().Msgf("playback: session started: track=%s", t.Name)
	c.console.Printf("\nNow playing: %s\n", t.Name)
	c.console.Println(msgCommands)

	for {
		if err := ctx.Err(); err != nil {
			c.end()
			log.Info().Msgf("playback: session cancelled: track=%s", t.Name)
			return OutcomeStopped, err
		}

		if c.finished() {
			c.console.Println(msgSongFinished)
			log.Info().Msgf("playback: track finished: track=%s", t.Name)
			return OutcomeFinished, nil
		}

		// Paused keeps the session alive even though the engine is idle.
		if c.state == StatePlaying && !c.engine.Busy() {
			c.state = StateEnded
			log.Debug().Msgf("playback: engine idle without end event: track=%s", t.Name)
			return OutcomeFinished, nil
		}

		line, err := c.console.ReadLine(prompt)
		if err != nil {
			c.end()
			log.Info().Msgf("playback: input closed: track=%s", t.Name)
			return OutcomeStopped, err
		}

		// The track may have ended while we were blocked on input.
		if c.finished() {
			c.console.Println(msgSongFinished)
			log.Info().Msgf("playback: track finished during input, dropping command=%q", line)
			return OutcomeFinished, nil
		}

		cmd := ParseCommand(line)
		prev := c.state
		c.apply(cmd)
		if prev != c.state {
			log.Debug().Msgf("playback: state changed: command=%s from=%s to=%s", cmd, prev, c.state)
		}
		if c.state == StateEnded {
			log.Info().Msgf("playback: stopped by user: track=%s", t.Name)
			return OutcomeStopped, nil
		}

		select {
		case <-ctx.Done():
		case <-time.After(c.config.TickInterval):
		}
	}
}

// State returns the state of the current or most recent session.
func (c *Controller) State() State {
	return c.state
}

// SessionID returns the id of the current or most recent session.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// apply performs the transition for one command.
func (c *Controller) apply(cmd Command) {
	switch cmd {
	case CommandPause:
		if c.state == StatePaused {
			c.console.Println(msgAlreadyPaused)
			return
		}
		c.engine.Pause()
		c.state = StatePaused
		c.console.Println(msgPaused)

	case CommandResume:
		if c.state != StatePaused {
			c.console.Println(msgNotPaused)
			return
		}
		c.engine.Unpause()
		c.state = StatePlaying
		c.console.Println(msgResumed)

	case CommandStop:
		c.end()
		c.console.Println(msgStopped)

	case CommandInvalid:
		c.console.Println(msgInvalidCommand)

	case CommandNone:
	}
}

// finished drains pending engine events and reports whether the track ended.
func (c *Controller) finished() bool {
	ended := false
	for {
		select {
		case ev := <-c.engine.Events():
			zlog.Debug().Msgf("playback: engine event: session=%s type=%s path=%s", c.sessionID, ev.Type, ev.Path)
			if ev.Type == event.TrackEnded {
				ended = true
			}
		default:
			if ended {
				c.state = StateEnded
			}
			return ended
		}
	}
}

func (c *Controller) end() {
	c.engine.Stop()
	c.state = StateEnded
}
