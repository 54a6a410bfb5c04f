//go:build !cgo || nospeaker

package audio

// NewSpeakerEngine reports that system audio output needs a cgo build.
// The null driver stays available.
func NewSpeakerEngine(settings Settings) (Engine, error) {
	return nil, ErrSpeakerUnavailable
}
