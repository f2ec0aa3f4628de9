package term

import (
	"bytes"
	"testing"
)

func TestSequenceEmitters(t *testing.T) {
	cases := []struct {
		name string
		fn   func(*bytes.Buffer)
		want string
	}{
		{"enter alt screen", func(b *bytes.Buffer) { EnterAltScreen(b) }, "\x1b[?1049h"},
		{"leave alt screen", func(b *bytes.Buffer) { LeaveAltScreen(b) }, "\x1b[?1049l"},
		{"hide cursor", func(b *bytes.Buffer) { HideCursor(b) }, "\x1b[?25l"},
		{"show cursor", func(b *bytes.Buffer) { ShowCursor(b) }, "\x1b[?25h"},
		{"cursor home", func(b *bytes.Buffer) { CursorHome(b) }, "\x1b[H"},
		{"clear screen", func(b *bytes.Buffer) { ClearScreen(b) }, "\x1b[2J"},
		{"move cursor", func(b *bytes.Buffer) { MoveCursor(b, 3, 7) }, "\x1b[3;7H"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.fn(&buf)
			if got := buf.String(); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStateDisableIdempotent(t *testing.T) {
	var s *State
	if err := s.Disable(); err != nil {
		t.Errorf("Disable on nil State: %v", err)
	}

	s = &State{}
	if err := s.Disable(); err != nil {
		t.Errorf("Disable on zero-value State: %v", err)
	}
	if err := s.Disable(); err != nil {
		t.Errorf("second Disable: %v", err)
	}
}
