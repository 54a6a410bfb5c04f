// Package session owns the audio engine for one interactive player run.
package session

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/console"
	"github.com/osa030/tunebox/internal/app/menu"
	"github.com/osa030/tunebox/internal/app/playback"
)

const msgAudioInitFailed = "Audio initialization failed!"

// Engine is a playback engine that holds an output device.
type Engine interface {
	playback.Engine
	Close() error
}

// Opener initialises the audio engine.
type Opener func() (Engine, error)

// Manager opens the engine, runs the menu and releases the engine
// on every exit path.
type Manager struct {
	open    Opener
	scanner menu.Scanner
	console *console.Console
	config  playback.Config

	mu     sync.Mutex
	engine Engine
	closed bool
}

// NewManager creates a new session manager.
func NewManager(open Opener, scanner menu.Scanner, con *console.Console, config playback.Config) *Manager {
	return &Manager{
		open:    open,
		scanner: scanner,
		console: con,
		config:  config,
	}
}

// Run opens the engine and drives the menu until it returns.
// The engine is closed before Run returns.
func (m *Manager) Run(ctx context.Context) error {
	engine, err := m.open()
	if err != nil {
		m.console.Println(msgAudioInitFailed, err)
		return errors.Wrap(err, "failed to open audio engine")
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		// Closed while opening.
		m.release(engine)
		return errors.New("session closed")
	}
	m.engine = engine
	m.mu.Unlock()
	defer m.Close()

	zlog.Debug().Msg("session: audio engine opened")

	controller := playback.NewController(engine, m.console, m.config)
	return menu.New(m.scanner, controller, m.console).Run(ctx)
}

// Close releases the engine. It is safe to call more than once and from
// another goroutine, such as a signal handler.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	if m.engine != nil {
		m.release(m.engine)
	}
}

func (m *Manager) release(engine Engine) {
	if err := engine.Close(); err != nil {
		zlog.Warn().Msgf("session: failed to close audio engine: %v", err)
		return
	}
	zlog.Debug().Msg("session: audio engine closed")
}
