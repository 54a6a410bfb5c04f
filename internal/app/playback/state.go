// Package playback provides the interactive controller for a single track.
package playback

// State represents the playback session state.
type State int

const (
	StatePlaying State = iota // Track is playing
	StatePaused               // Track is paused by the user
	StateEnded                // Track finished or was stopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Outcome describes how a session ended.
type Outcome int

const (
	OutcomeFinished Outcome = iota // Track reached its end
	OutcomeStopped                 // User stopped the track
	OutcomeSkipped                 // Track file was missing, nothing played
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFinished:
		return "finished"
	case OutcomeStopped:
		return "stopped"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}
