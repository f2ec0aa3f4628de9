package input

import (
	"bytes"
	"strings"
	"sync/atomic"
	"testing"
)

func decode(t *testing.T, raw []byte) []Event {
	t.Helper()
	d := NewDecoder(bytes.NewReader(raw), -1, nil)
	var events []Event
	for {
		ev, err := d.Poll(0)
		if err != nil {
			t.Fatalf("Poll: %v", err)
		}
		if ev.Type == EventNone {
			break
		}
		events = append(events, ev)
	}
	return events
}

func TestDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		bytes []byte
		want  KeyEvent
	}{
		{"up arrow", []byte{0x1b, '[', 'A'}, KeyEvent{Code: KeyUp}},
		{"delete", []byte{0x1b, '[', '3', '~'}, KeyEvent{Code: KeyDelete}},
		{"f1 ss3", []byte{0x1b, 'O', 'P'}, KeyEvent{Code: KeyF1}},
		{"ctrl-c", []byte{0x03}, KeyEvent{Code: KeyChar, Ch: 'c', Mod: ModCtrl}},
		{"enter", []byte{0x0d}, KeyEvent{Code: KeyEnter}},
		{"backspace del", []byte{0x7f}, KeyEvent{Code: KeyBackspace}},
		{"backspace bs", []byte{0x08}, KeyEvent{Code: KeyBackspace}},
		{"alt-q", []byte{0x1b, 'q'}, KeyEvent{Code: KeyChar, Ch: 'q', Mod: ModAlt}},
		{"tab", []byte{0x09}, KeyEvent{Code: KeyTab}},
		{"plain char", []byte{'x'}, KeyEvent{Code: KeyChar, Ch: 'x'}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			events := decode(t, tc.bytes)
			if len(events) != 1 || events[0].Type != EventKey {
				t.Fatalf("got %d events %+v, want exactly one key event", len(events), events)
			}
			if events[0].Key != tc.want {
				t.Errorf("got %+v, want %+v", events[0].Key, tc.want)
			}
		})
	}
}

func TestBareEscape(t *testing.T) {
	events := decode(t, []byte{0x1b})
	if len(events) != 1 || events[0].Key.Code != KeyEscape {
		t.Fatalf("got %+v, want single Escape event", events)
	}
}

func TestKeySequenceInOrder(t *testing.T) {
	// §8 scenario 3.
	events := decode(t, []byte("\x1b[A\x1b[Bq\x03"))
	want := []KeyEvent{
		{Code: KeyUp},
		{Code: KeyDown},
		{Code: KeyChar, Ch: 'q'},
		{Code: KeyChar, Ch: 'c', Mod: ModCtrl},
	}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(events), len(want), events)
	}
	for i, ev := range events {
		if ev.Key != want[i] {
			t.Errorf("event %d: got %+v, want %+v", i, ev.Key, want[i])
		}
	}
}

func TestAllCtrlLettersExceptSpecials(t *testing.T) {
	for c := byte(1); c < 0x20; c++ {
		if c == 0x0d || c == 0x09 || c == 0x08 || c == 0x1b {
			continue
		}
		events := decode(t, []byte{c})
		if len(events) != 1 {
			t.Fatalf("ctrl byte %#x: got %d events", c, len(events))
		}
		want := KeyEvent{Code: KeyChar, Ch: 'a' + c - 1, Mod: ModCtrl}
		if events[0].Key != want {
			t.Errorf("ctrl byte %#x: got %+v, want %+v", c, events[0].Key, want)
		}
	}
}

func TestResizePreemption(t *testing.T) {
	d := NewDecoder(strings.NewReader("a"), -1, func() (int, int, error) {
		return 24, 80, nil
	})
	atomic.StoreInt32(&d.resized, 1)

	ev1, err := d.Poll(-1)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if ev1.Type != EventResize || ev1.Rows != 24 || ev1.Cols != 80 {
		t.Fatalf("first poll = %+v, want Resize{24,80}", ev1)
	}

	ev2, err := d.Poll(-1)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if ev2.Type != EventKey || ev2.Key.Ch != 'a' {
		t.Fatalf("second poll = %+v, want Char('a')", ev2)
	}
}

func TestFunctionKeyTildeSequences(t *testing.T) {
	cases := []struct {
		seq  string
		want KeyCode
	}{
		{"\x1b[15~", KeyF5},
		{"\x1b[17~", KeyF6},
		{"\x1b[20~", KeyF9},
		{"\x1b[24~", KeyF12},
		{"\x1b[1~", KeyHome},
		{"\x1b[4~", KeyEnd},
		{"\x1b[5~", KeyPageUp},
		{"\x1b[6~", KeyPageDown},
		{"\x1b[2~", KeyInsert},
	}
	for _, tc := range cases {
		events := decode(t, []byte(tc.seq))
		if len(events) != 1 || events[0].Key.Code != tc.want {
			t.Errorf("%q: got %+v, want code %v", tc.seq, events, tc.want)
		}
	}
}
