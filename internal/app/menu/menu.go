// Package menu provides the interactive track selection loop.
package menu

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/app/console"
	"github.com/osa030/tunebox/internal/app/playback"
	"github.com/osa030/tunebox/internal/domain/track"
)

const (
	header       = "*****MP3 PLAYER******"
	listTitle    = "My song list:"
	choicePrompt = "\nEnter the song # to play (or 'Q' to quit): "
	msgBye       = "Bye!"
	msgNotNumber = "Enter a valid number"
	msgBadChoice = "Invalid choice"
	quitCommand  = "Q"
)

// Scanner produces the library shown in the menu.
type Scanner interface {
	Scan() (track.Library, error)
	// Diagnose turns a Scan error into a user-facing message.
	Diagnose(err error) string
}

// Player plays one selected track.
type Player interface {
	Run(ctx context.Context, t track.Track) (playback.Outcome, error)
}

// Menu lists the library and hands the selected track to the player.
type Menu struct {
	scanner Scanner
	player  Player
	console *console.Console
}

// New creates a new menu.
func New(scanner Scanner, player Player, con *console.Console) *Menu {
	return &Menu{
		scanner: scanner,
		player:  player,
		console: con,
	}
}

// Run displays the menu until the user quits or input closes.
// The library is rescanned before every display. A scan failure is reported
// to the user and returned.
func (m *Menu) Run(ctx context.Context) error {
	for {
		lib, err := m.scan()
		if err != nil {
			return err
		}
		m.show(lib)

		choice, err := m.console.ReadLine(choicePrompt)
		if err != nil {
			if errors.Is(err, console.ErrInputClosed) {
				zlog.Info().Msg("menu: input closed, leaving menu")
				return nil
			}
			return err
		}

		if strings.EqualFold(choice, quitCommand) {
			m.console.Println(msgBye)
			return nil
		}

		if !isNumber(choice) {
			m.console.Println(msgNotNumber)
			continue
		}

		index, err := strconv.Atoi(choice)
		if err != nil {
			// Only overflow reaches here.
			m.console.Println(msgBadChoice)
			continue
		}

		t, err := lib.At(index)
		if err != nil {
			m.console.Println(msgBadChoice)
			continue
		}

		if err := m.play(ctx, t); err != nil {
			if errors.Is(err, console.ErrInputClosed) {
				zlog.Info().Msg("menu: input closed during playback, leaving menu")
				return nil
			}
			return err
		}
	}
}

// List prints the numbered library once.
func (m *Menu) List() error {
	lib, err := m.scan()
	if err != nil {
		return err
	}
	m.show(lib)
	return nil
}

func (m *Menu) scan() (track.Library, error) {
	lib, err := m.scanner.Scan()
	if err != nil {
		zlog.Warn().Msgf("menu: library scan failed: %v", err)
		m.console.Println(m.scanner.Diagnose(err))
		return nil, err
	}
	return lib, nil
}

func (m *Menu) show(lib track.Library) {
	m.console.Println(header)
	m.console.Println(listTitle)
	for i, t := range lib {
		m.console.Printf("%d. %s\n", i+1, t.Name)
	}
}

// play runs the player and absorbs per-track errors.
// Closed input and cancellation are returned so the menu can leave.
func (m *Menu) play(ctx context.Context, t track.Track) error {
	outcome, err := m.player.Run(ctx, t)
	switch {
	case err == nil:
		zlog.Debug().Msgf("menu: playback returned: track=%s outcome=%s", t.Name, outcome)
		return nil
	case errors.Is(err, console.ErrInputClosed):
		return err
	case ctx.Err() != nil:
		return err
	default:
		zlog.Error().Msgf("menu: playback failed: track=%s error=%v", t.Name, err)
		m.console.Printf("Could not play %s: %v\n", t.Name, err)
		return nil
	}
}

// isNumber reports whether s is a non-empty run of ASCII digits.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
