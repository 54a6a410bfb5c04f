// Package library provides the scanner that builds the track list from a directory.
package library

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/tunebox/internal/domain/track"
)

// Errors
var (
	ErrFolderNotFound = errors.New("folder not found")
	ErrNoFiles        = errors.New("no files found")
)

// Scanner enumerates tracks in a directory by file extension.
type Scanner struct {
	Dir       string // Library directory
	Extension string // Case-sensitive suffix, e.g. ".mp3"
}

// NewScanner creates a new scanner.
func NewScanner(dir, extension string) *Scanner {
	return &Scanner{
		Dir:       dir,
		Extension: extension,
	}
}

// Scan returns the matching tracks in directory order.
// Returns ErrFolderNotFound if the directory is missing and ErrNoFiles if nothing matches.
func (s *Scanner) Scan() (track.Library, error) {
	info, err := os.Stat(s.Dir)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrapf(ErrFolderNotFound, "dir=%s", s.Dir)
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read library dir %s", s.Dir)
	}

	lib := make(track.Library, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), s.Extension) {
			continue
		}
		lib = append(lib, track.New(s.Dir, e.Name()))
	}

	zlog.Debug().Msgf("library: scanned dir=%s ext=%s entries=%d tracks=%d", s.Dir, s.Extension, len(entries), len(lib))

	if lib.IsEmpty() {
		return lib, errors.Wrapf(ErrNoFiles, "dir=%s ext=%s", s.Dir, s.Extension)
	}
	return lib, nil
}

// Diagnose returns the user-facing message for a Scan error.
func (s *Scanner) Diagnose(err error) string {
	switch {
	case errors.Is(err, ErrFolderNotFound):
		return fmt.Sprintf("Folder '%s' not found", s.Dir)
	case errors.Is(err, ErrNoFiles):
		return fmt.Sprintf("No %s files found!", s.Extension)
	default:
		return fmt.Sprintf("Cannot read folder '%s': %v", s.Dir, err)
	}
}
