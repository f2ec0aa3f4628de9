// Package input translates the raw byte stream from a terminal
// device into semantic key and resize events. The decoder is
// single-threaded and synchronous: one call to Poll delivers exactly
// one Event.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// ErrInputFailed is returned when a read from the terminal device
// returns an unrecoverable condition.
var ErrInputFailed = errors.New("input: read failed")

// escTimeout is how long the decoder waits for a follow-up byte after
// a bare ESC before concluding it was a standalone Escape keypress.
const escTimeout = 10 * time.Millisecond

// csiTimeout is the max time the decoder waits for each subsequent
// byte while assembling a CSI/SS3 sequence.
const csiTimeout = 50 * time.Millisecond

// SizeFunc reports the current terminal dimensions; it is called
// whenever a resize is latched.
type SizeFunc func() (rows, cols int, err error)

// Decoder reads from a terminal byte stream and produces Events.
type Decoder struct {
	r      *bufio.Reader
	fd     int // underlying file descriptor for readiness polling, or -1
	sizeFn SizeFunc

	resized  int32 // atomic flag set by the SIGWINCH watcher
	resizeCh chan os.Signal
}

// NewDecoder builds a Decoder reading from r. If r is backed by a
// pollable file descriptor (e.g. the terminal device returned by
// term.State.File), pass it as fd so Poll's timeout semantics are
// honored by the OS; pass -1 for a plain io.Reader (as tests do,
// feeding a canned byte sequence that is already fully buffered).
func NewDecoder(r io.Reader, fd int, sizeFn SizeFunc) *Decoder {
	return &Decoder{
		r:      bufio.NewReader(r),
		fd:     fd,
		sizeFn: sizeFn,
	}
}

// WatchResize starts listening for SIGWINCH and latches a flag that
// Poll checks before and after its wait. The handler itself does
// nothing but store a flag, per spec: all other work (querying the
// new size) happens on Poll's calling goroutine.
func (d *Decoder) WatchResize() {
	d.resizeCh = make(chan os.Signal, 1)
	signal.Notify(d.resizeCh, syscall.SIGWINCH)
	go func() {
		for range d.resizeCh {
			atomic.StoreInt32(&d.resized, 1)
		}
	}()
}

// StopWatchingResize stops the SIGWINCH watcher started by WatchResize.
func (d *Decoder) StopWatchingResize() {
	if d.resizeCh != nil {
		signal.Stop(d.resizeCh)
	}
}

// takeResize clears and reports the resize flag, querying the new
// size if it was set.
func (d *Decoder) takeResize() (Event, bool) {
	if !atomic.CompareAndSwapInt32(&d.resized, 1, 0) {
		return Event{}, false
	}
	if d.sizeFn == nil {
		return Event{}, false
	}
	rows, cols, err := d.sizeFn()
	if err != nil {
		return Event{}, false
	}
	return Event{Type: EventResize, Rows: rows, Cols: cols}, true
}

// Poll returns the next Event. timeoutMs < 0 blocks indefinitely;
// == 0 returns EventNone immediately if nothing is ready; > 0 waits
// up to that many milliseconds. A pending resize is always delivered
// ahead of buffered input, checked both before and after the wait.
func (d *Decoder) Poll(timeoutMs int) (Event, error) {
	if ev, ok := d.takeResize(); ok {
		return ev, nil
	}

	if d.fd >= 0 && d.r.Buffered() == 0 {
		ready, err := waitReadable(d.fd, timeoutMs)
		if err != nil {
			return Event{}, fmt.Errorf("%w: %v", ErrInputFailed, err)
		}
		if ev, ok := d.takeResize(); ok {
			return ev, nil
		}
		if !ready {
			return Event{Type: EventNone}, nil
		}
	}

	b, err := d.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			return Event{Type: EventNone}, nil
		}
		return Event{}, fmt.Errorf("%w: %v", ErrInputFailed, err)
	}

	key, err := d.decodeKey(b)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: EventKey, Key: key}, nil
}

// waitReadable blocks until fd has data available or the timeout (in
// milliseconds; negative blocks forever, zero returns immediately)
// elapses.
func waitReadable(fd int, timeoutMs int) (bool, error) {
	pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

// readFollowByte reads the next byte of an in-progress escape
// sequence, waiting up to timeout for it to arrive. ok is false if no
// byte arrived in time (or the stream ended).
func (d *Decoder) readFollowByte(timeout time.Duration) (b byte, ok bool) {
	if d.r.Buffered() > 0 {
		v, err := d.r.ReadByte()
		if err != nil {
			return 0, false
		}
		return v, true
	}
	if d.fd >= 0 {
		ready, err := waitReadable(d.fd, int(timeout/time.Millisecond))
		if err != nil || !ready {
			return 0, false
		}
		v, err := d.r.ReadByte()
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

// decodeKey interprets the first byte of one key event, consuming
// further bytes from the stream as needed (escape sequences).
func (d *Decoder) decodeKey(b byte) (KeyEvent, error) {
	switch {
	case b == 0x1b:
		return d.decodeEscape()
	case b == 0x0d:
		return KeyEvent{Code: KeyEnter}, nil
	case b == 0x09:
		return KeyEvent{Code: KeyTab}, nil
	case b == 0x08 || b == 0x7f:
		return KeyEvent{Code: KeyBackspace}, nil
	case b < 0x20:
		return KeyEvent{Code: KeyChar, Ch: 'a' + b - 1, Mod: ModCtrl}, nil
	default:
		return KeyEvent{Code: KeyChar, Ch: b}, nil
	}
}

func (d *Decoder) decodeEscape() (KeyEvent, error) {
	next, ok := d.readFollowByte(escTimeout)
	if !ok {
		return KeyEvent{Code: KeyEscape}, nil
	}
	switch next {
	case '[':
		return d.parseCSI()
	case 'O':
		return d.parseSS3()
	default:
		return KeyEvent{Code: KeyChar, Ch: next, Mod: ModAlt}, nil
	}
}

// parseCSI consumes parameter bytes up to and including the final
// byte of a CSI sequence (ESC [ already consumed) and dispatches it.
func (d *Decoder) parseCSI() (KeyEvent, error) {
	var params []byte
	for {
		b, ok := d.readFollowByte(csiTimeout)
		if !ok {
			return KeyEvent{Code: KeyEscape}, nil
		}
		if b >= 0x40 && b <= 0x7e {
			return dispatchCSI(params, b), nil
		}
		params = append(params, b)
	}
}

func dispatchCSI(params []byte, final byte) KeyEvent {
	switch final {
	case 'A':
		return KeyEvent{Code: KeyUp}
	case 'B':
		return KeyEvent{Code: KeyDown}
	case 'C':
		return KeyEvent{Code: KeyRight}
	case 'D':
		return KeyEvent{Code: KeyLeft}
	case 'H':
		return KeyEvent{Code: KeyHome}
	case 'F':
		return KeyEvent{Code: KeyEnd}
	case '~':
		return dispatchTilde(params)
	}
	return KeyEvent{}
}

func dispatchTilde(params []byte) KeyEvent {
	key := params
	for i, b := range params {
		if b == ';' {
			key = params[:i]
			break
		}
	}
	switch string(key) {
	case "1", "7":
		return KeyEvent{Code: KeyHome}
	case "2":
		return KeyEvent{Code: KeyInsert}
	case "3":
		return KeyEvent{Code: KeyDelete}
	case "4", "8":
		return KeyEvent{Code: KeyEnd}
	case "5":
		return KeyEvent{Code: KeyPageUp}
	case "6":
		return KeyEvent{Code: KeyPageDown}
	case "15":
		return KeyEvent{Code: KeyF5}
	case "17":
		return KeyEvent{Code: KeyF6}
	case "18":
		return KeyEvent{Code: KeyF7}
	case "19":
		return KeyEvent{Code: KeyF8}
	case "20":
		return KeyEvent{Code: KeyF9}
	case "21":
		return KeyEvent{Code: KeyF10}
	case "23":
		return KeyEvent{Code: KeyF11}
	case "24":
		return KeyEvent{Code: KeyF12}
	}
	return KeyEvent{}
}

// parseSS3 consumes the final byte of an SS3 sequence (ESC O already
// consumed) and dispatches it.
func (d *Decoder) parseSS3() (KeyEvent, error) {
	b, ok := d.readFollowByte(csiTimeout)
	if !ok {
		return KeyEvent{Code: KeyEscape}, nil
	}
	switch b {
	case 'A':
		return KeyEvent{Code: KeyUp}, nil
	case 'B':
		return KeyEvent{Code: KeyDown}, nil
	case 'C':
		return KeyEvent{Code: KeyRight}, nil
	case 'D':
		return KeyEvent{Code: KeyLeft}, nil
	case 'P':
		return KeyEvent{Code: KeyF1}, nil
	case 'Q':
		return KeyEvent{Code: KeyF2}, nil
	case 'R':
		return KeyEvent{Code: KeyF3}, nil
	case 'S':
		return KeyEvent{Code: KeyF4}, nil
	case 'H':
		return KeyEvent{Code: KeyHome}, nil
	case 'F':
		return KeyEvent{Code: KeyEnd}, nil
	}
	return KeyEvent{}, nil
}
