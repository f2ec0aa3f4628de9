// Package termkit ties the terminal, input, cell buffer, layout, and
// widget packages together into one entry point: open the terminal,
// build a widget tree each frame, render it into a buffer, and flush
// that buffer to the screen in a single write.
package termkit

import (
	"bufio"
	"fmt"
	"os"

	"termkit/cellbuf"
	"termkit/input"
	"termkit/layout"
	"termkit/term"
	"termkit/widget"
)

// defaultArenaCapacity is enough widget nodes for a dashboard several
// levels deep; callers with larger trees should pass a larger
// capacity to NewWithArena.
const defaultArenaCapacity = 512

// App owns the terminal session: raw mode, the alternate screen, the
// input decoder, and the cell buffer/arena pair a caller re-renders
// every frame.
type App struct {
	term    *term.State
	out     *bufio.Writer
	decoder *input.Decoder
	arena   *widget.Arena
	buf     *cellbuf.Buffer
	rows    int
	cols    int
}

// New enables raw mode, enters the alternate screen, hides the
// cursor, and sizes the cell buffer to the terminal's current
// dimensions. Callers must call Close when done, even on error paths
// that occur after a successful New.
func New() (*App, error) {
	return NewWithArena(defaultArenaCapacity)
}

// NewWithArena is New with an explicit per-frame widget capacity.
func NewWithArena(arenaCapacity int) (*App, error) {
	st, err := term.Enable()
	if err != nil {
		return nil, err
	}

	rows, cols, err := st.Size()
	if err != nil {
		st.Disable()
		return nil, err
	}

	buf, err := cellbuf.New(rows, cols)
	if err != nil {
		st.Disable()
		return nil, err
	}

	out := bufio.NewWriter(st.File())
	term.EnterAltScreen(out)
	term.HideCursor(out)
	out.Flush()

	dec := input.NewDecoder(st.File(), int(st.File().Fd()), st.Size)
	dec.WatchResize()

	return &App{
		term:    st,
		out:     out,
		decoder: dec,
		arena:   widget.NewArena(arenaCapacity),
		buf:     buf,
		rows:    rows,
		cols:    cols,
	}, nil
}

// Close restores the cursor and primary screen, stops the resize
// watcher, and restores the terminal's saved mode. Safe to call on a
// nil App and more than once.
func (a *App) Close() error {
	if a == nil {
		return nil
	}
	a.decoder.StopWatchingResize()
	term.ShowCursor(a.out)
	term.LeaveAltScreen(a.out)
	a.out.Flush()
	return a.term.Disable()
}

// Size reports the buffer's current rows and columns.
func (a *App) Size() (rows, cols int) { return a.rows, a.cols }

// Frame starts a new widget-construction frame: every widget from the
// previous frame becomes stale. Callers build a tree with the
// returned Frame's constructor methods and pass its root to Render.
func (a *App) Frame() *widget.Frame { return a.arena.Begin() }

// Render draws root into the buffer, sized to the whole terminal, and
// flushes it to the screen in a single write.
func (a *App) Render(root *widget.Widget) error {
	a.buf.Clear()
	area := layout.Rect{X: 0, Y: 0, Width: uint16(a.cols), Height: uint16(a.rows)}
	widget.Render(root, a.buf, area)
	if err := a.buf.Serialize(a.out); err != nil {
		return fmt.Errorf("termkit: render: %w", err)
	}
	return a.out.Flush()
}

// Poll returns the next input or resize event; see input.Decoder.Poll
// for timeoutMs semantics.
func (a *App) Poll(timeoutMs int) (input.Event, error) {
	ev, err := a.decoder.Poll(timeoutMs)
	if err != nil {
		return ev, err
	}
	if ev.Type == input.EventResize {
		a.handleResize(ev)
	}
	return ev, nil
}

// handleResize reallocates the buffer to the new dimensions. Any
// widgets already built against the old size are discarded by the
// caller's next Frame call, per the usual arena-generation contract.
func (a *App) handleResize(ev input.Event) {
	a.rows, a.cols = ev.Rows, ev.Cols
	buf, err := cellbuf.New(a.rows, a.cols)
	if err != nil {
		return
	}
	a.buf = buf
}

// Stdout is exposed for callers that want to write diagnostics after
// Close restores the primary screen (e.g. a fatal error message).
func Stdout() *os.File { return os.Stdout }
