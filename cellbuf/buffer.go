// Package cellbuf implements the styled character grid and its
// style-diffing serializer: the off-screen buffer every widget draws
// into, and the single escape-sequence stream written per frame.
package cellbuf

import (
	"errors"
	"fmt"
	"io"
)

// ErrAllocationFailed is returned when a buffer cannot be created with
// the requested dimensions.
var ErrAllocationFailed = errors.New("cellbuf: allocation failed")

const tabWidth = 4

// Cell is the atomic unit of the grid: one ASCII byte plus its style.
// Multibyte UTF-8 passed to the write operations is stored byte for
// byte and rendered verbatim; cells are not a unit of measurement for
// it (spec's explicit non-goal: no double-width/segmentation logic).
type Cell struct {
	Ch    byte
	Fg    Color
	Bg    Color
	Attrs Attrs
}

// defaultCell is the value every cell holds initially and after Clear:
// a space, default colors, no attributes.
var defaultCell = Cell{Ch: ' ', Fg: Default, Bg: Default}

// Buffer is a row-major styled character grid of fixed shape.
type Buffer struct {
	Rows, Cols int
	cells      []Cell
}

// New allocates a Rows x Cols buffer, every cell set to the default
// cell.
func New(rows, cols int) (*Buffer, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative dimension %dx%d", ErrAllocationFailed, rows, cols)
	}
	b := &Buffer{
		Rows:  rows,
		Cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	b.Clear()
	return b, nil
}

func (b *Buffer) index(row, col int) (int, bool) {
	if row < 0 || row >= b.Rows || col < 0 || col >= b.Cols {
		return 0, false
	}
	return row*b.Cols + col, true
}

// Clear resets every cell to the default cell.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = defaultCell
	}
}

// Cell returns the cell at (row, col), or the default cell if out of
// range.
func (b *Buffer) Cell(row, col int) Cell {
	i, ok := b.index(row, col)
	if !ok {
		return defaultCell
	}
	return b.cells[i]
}

// Set replaces the cell at (row, col) with ch and the default style.
// Out-of-range coordinates are silently ignored.
func (b *Buffer) Set(row, col int, ch byte) {
	b.SetStyled(row, col, ch, Default, Default, 0)
}

// SetStyled replaces the cell at (row, col) with ch and an explicit
// style. Out-of-range coordinates are silently ignored.
func (b *Buffer) SetStyled(row, col int, ch byte, fg, bg Color, attrs Attrs) {
	i, ok := b.index(row, col)
	if !ok {
		return
	}
	b.cells[i] = Cell{Ch: ch, Fg: fg, Bg: bg, Attrs: attrs}
}

// SetString writes s rightward from (row, col) with the default
// style, stopping at column exhaustion or end of string. Tabs expand
// to the next multiple of tabWidth measured from col.
func (b *Buffer) SetString(row, col int, s string) {
	b.SetStringStyled(row, col, s, Default, Default, 0)
}

// SetStringStyled is SetString with an explicit style applied to
// every written cell.
func (b *Buffer) SetStringStyled(row, col int, s string, fg, bg Color, attrs Attrs) {
	start := col
	c := col
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if c >= b.Cols {
			return
		}
		if ch == '\t' {
			rel := c - start
			next := ((rel / tabWidth) + 1) * tabWidth
			stop := start + next
			for ; c < stop && c < b.Cols; c++ {
				b.SetStyled(row, c, ' ', fg, bg, attrs)
			}
			continue
		}
		b.SetStyled(row, c, ch, fg, bg, attrs)
		c++
	}
}

// Serialize writes the buffer to w as a single escape-sequence
// stream: a cursor-home move, then a top-to-bottom, left-to-right
// scan emitting a style reset plus fg/bg/attribute SGRs whenever the
// active style changes, and a closing reset. There is no cross-frame
// diffing — every cell is written every call, as spec.md's Non-goals
// require (full redraw only).
func (b *Buffer) Serialize(w io.Writer) error {
	bw := &byteCounter{w: w}

	writeString(bw, "\x1b[H")

	var active Cell
	styled := false

	for row := 0; row < b.Rows; row++ {
		for col := 0; col < b.Cols; col++ {
			cell := b.cells[row*b.Cols+col]
			if !styled || cell.Fg != active.Fg || cell.Bg != active.Bg || cell.Attrs != active.Attrs {
				writeString(bw, "\x1b[0m")
				writeString(bw, "\x1b["+cell.Fg.fgSGR()+"m")
				writeString(bw, "\x1b["+cell.Bg.bgSGR()+"m")
				for _, code := range cell.Attrs.sgrCodes() {
					writeString(bw, "\x1b["+code+"m")
				}
				active = cell
				styled = true
			}
			ch := cell.Ch
			if ch == 0 {
				ch = ' '
			}
			bw.b = append(bw.b, ch)
		}
	}

	writeString(bw, "\x1b[0m")
	return bw.flush()
}

// byteCounter accumulates the whole frame so Serialize performs
// exactly one underlying write, per spec §4.3.
type byteCounter struct {
	w   io.Writer
	b   []byte
	err error
}

func writeString(bc *byteCounter, s string) {
	bc.b = append(bc.b, s...)
}

func (bc *byteCounter) flush() error {
	if bc.err != nil {
		return bc.err
	}
	_, err := bc.w.Write(bc.b)
	return err
}
