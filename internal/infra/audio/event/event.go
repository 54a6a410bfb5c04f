// Package event defines the notifications an audio engine emits.
// It has no dependencies so consumers need not link a device driver.
package event

// Type represents an engine notification type.
type Type int

const (
	TrackEnded Type = iota // Track reached its end without being stopped
)

// String returns the string representation of the event type.
func (t Type) String() string {
	switch t {
	case TrackEnded:
		return "track_ended"
	default:
		return "unknown"
	}
}

// Event represents an engine notification.
type Event struct {
	Type Type
	Path string // Track that produced the event
}
