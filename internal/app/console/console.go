// Package console provides line-oriented terminal I/O shared by the menu and playback loops.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInputClosed is returned when the input stream reaches EOF.
var ErrInputClosed = errors.New("input closed")

// Console reads one command per line and writes user-facing messages.
// A single Console must be shared by every loop reading the same input,
// otherwise buffered lines are lost between readers.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a new console.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ReadLine prints the prompt and reads one line with surrounding whitespace trimmed.
func (c *Console) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(c.out, prompt)
	}

	line, err := c.in.ReadString('\n')
	if err != nil {
		// A final line without newline is still a command.
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrInputClosed
		}
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

// Println writes a line to the output.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Printf writes a formatted message to the output.
func (c *Console) Printf(format string, a ...any) {
	fmt.Fprintf(c.out, format, a...)
}
