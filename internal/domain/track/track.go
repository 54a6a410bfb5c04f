// Package track provides the Track and Library domain entities.
package track

import (
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// ErrIndexOutOfRange is returned when a 1-based selection falls outside the library.
var ErrIndexOutOfRange = errors.New("index out of range")

// Track represents a playable audio file inside the library directory.
type Track struct {
	Name string // File name as listed in the menu
	Path string // Resolved path (library dir + name)
}

// New creates a track for the named file inside dir.
func New(dir, name string) Track {
	return Track{
		Name: name,
		Path: filepath.Join(dir, name),
	}
}

// Library is the ordered list of tracks produced by one scan.
// Positions are 1-based when shown to the user.
type Library []Track

// Len returns the number of tracks.
func (l Library) Len() int {
	return len(l)
}

// IsEmpty returns true if the library holds no tracks.
func (l Library) IsEmpty() bool {
	return len(l) == 0
}

// At returns the track at the given 1-based position.
func (l Library) At(index int) (Track, error) {
	if index < 1 || index > len(l) {
		return Track{}, errors.Wrapf(ErrIndexOutOfRange, "index %d (library size %d)", index, len(l))
	}
	return l[index-1], nil
}

// Names returns all track names in library order.
func (l Library) Names() []string {
	names := make([]string, len(l))
	for i, t := range l {
		names[i] = t.Name
	}
	return names
}
