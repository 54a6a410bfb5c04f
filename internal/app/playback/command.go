package playback

import "strings"

// Command represents a user command typed during playback.
type Command int

const (
	CommandNone    Command = iota // Empty input
	CommandPause                  // P
	CommandResume                 // R
	CommandStop                   // S
	CommandInvalid                // Anything else
)

// ParseCommand parses one input line. Letters are case-insensitive.
func ParseCommand(line string) Command {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "":
		return CommandNone
	case "P":
		return CommandPause
	case "R":
		return CommandResume
	case "S":
		return CommandStop
	default:
		return CommandInvalid
	}
}

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandStop:
		return "stop"
	default:
		return "invalid"
	}
}
