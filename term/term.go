// Package term owns the controlling terminal: raw mode, the alternate
// screen, cursor control, and size queries.
package term

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrUnavailable is returned when the controlling TTY cannot be opened
// or queried.
var ErrUnavailable = errors.New("term: controlling tty unavailable")

// ErrSizeUnavailable is returned when the window size cannot be
// determined.
var ErrSizeUnavailable = errors.New("term: size unavailable")

const ttyPath = "/dev/tty"

// State is the process-wide terminal handle: the opened controlling
// TTY descriptor plus its saved attributes. Keyboard input is always
// read from this descriptor, never from os.Stdin, so the library
// keeps working when a client's stdin is a pipe.
type State struct {
	f       *os.File
	saved   *term.State
	enabled bool
}

// active is the State returned by the last successful Enable.
var active *State

// Enable opens the controlling TTY and switches it into raw mode:
// no canonical processing, no echo, no signal generation, input and
// output post-processing disabled, 8-bit characters, and a minimum
// read of 1 byte with no inter-byte timeout. Calling Enable while a
// previously returned State is still enabled is a no-op that returns
// that same State.
func Enable() (*State, error) {
	if active != nil && active.enabled {
		return active, nil
	}

	f, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	saved, err := term.MakeRaw(int(f.Fd()))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	active = &State{f: f, saved: saved, enabled: true}
	return active, nil
}

// Disable restores the saved terminal attributes and closes the
// opened descriptor. Safe to call on a nil State, on a State that
// failed to fully initialize, and more than once.
func (s *State) Disable() error {
	if s == nil || !s.enabled {
		return nil
	}
	s.enabled = false

	var err error
	if s.saved != nil {
		err = term.Restore(int(s.f.Fd()), s.saved)
	}
	if cerr := s.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// File returns the opened controlling TTY descriptor. All keyboard
// input reads go through this, never os.Stdin.
func (s *State) File() *os.File {
	if s == nil {
		return nil
	}
	return s.f
}

// Size reports the current rows and columns of the controlling TTY.
func (s *State) Size() (rows, cols int, err error) {
	fd := int(os.Stdout.Fd())
	if s != nil && s.f != nil {
		fd = int(s.f.Fd())
	}
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrSizeUnavailable, err)
	}
	return rows, cols, nil
}

// The following emit the exact escape-sequence byte forms of spec §6.
// They are written directly to the given writer so callers can batch
// them into the same write as a rendered frame, or fire them once at
// startup/shutdown.

// EnterAltScreen switches to the terminal's alternate screen buffer.
func EnterAltScreen(w io.Writer) { io.WriteString(w, "\x1b[?1049h") }

// LeaveAltScreen restores the terminal's primary screen buffer.
func LeaveAltScreen(w io.Writer) { io.WriteString(w, "\x1b[?1049l") }

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) { io.WriteString(w, "\x1b[?25l") }

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) { io.WriteString(w, "\x1b[?25h") }

// MoveCursor positions the cursor using 1-based row/column coordinates.
func MoveCursor(w io.Writer, row, col int) { fmt.Fprintf(w, "\x1b[%d;%dH", row, col) }

// CursorHome moves the cursor to the top-left corner.
func CursorHome(w io.Writer) { io.WriteString(w, "\x1b[H") }

// ClearScreen clears the entire screen.
func ClearScreen(w io.Writer) { io.WriteString(w, "\x1b[2J") }
