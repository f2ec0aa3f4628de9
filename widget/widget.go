package widget

import (
	"termkit/cellbuf"
	"termkit/layout"
)

// Kind tags the variant a Widget holds. The set is closed: Render
// has exactly one case per Kind and every Kind here is handled.
type Kind int

const (
	KindVBox Kind = iota
	KindHBox
	KindText
	KindBlock
	KindList
	KindVLine
	KindHLine
	KindInput
	KindGauge
	KindSparkline
	KindTable
	KindCheckbox
	KindProgress
	KindTabs
)

// Widget is an immutable, arena-allocated node: a Constraint plus
// exactly the fields its Kind uses. Widgets borrow every string and
// slice they're built with from the caller, which must keep those
// buffers alive until Frame.End.
type Widget struct {
	gen uint32

	Kind       Kind
	Constraint layout.Constraint

	// VBox / HBox
	Children []*Widget

	// Text
	Text string

	// Block
	Title string
	Child *Widget

	// List / Checkbox / Tabs
	Items    []string
	Colors   []cellbuf.Color // List only; optional per-item fg, zero (Default) entries fall back to default
	Checked  []bool          // Checkbox only
	Selected int

	// Input
	InputText string
	Cursor    int
	Prompt    string

	// Gauge / Progress
	Value       float64
	Label       string
	Color       cellbuf.Color
	ShowPercent bool // Progress only

	// Sparkline (also uses Color)
	Data []float64

	// Table
	Headers []string
	Rows    [][]string
	Widths  []int
}

// Frame is the per-frame widget-construction handle: its constructor
// methods allocate nodes from the Arena that produced it via Begin.
type Frame struct {
	arena *Arena
}

// VBox lays out children top-to-bottom.
func (f *Frame) VBox(c layout.Constraint, children ...*Widget) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindVBox
	w.Constraint = c
	w.Children = children
	return w
}

// HBox lays out children left-to-right.
func (f *Frame) HBox(c layout.Constraint, children ...*Widget) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindHBox
	w.Constraint = c
	w.Children = children
	return w
}

// Text draws s, split on newlines, one line per row.
func (f *Frame) Text(c layout.Constraint, s string) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindText
	w.Constraint = c
	w.Text = s
	return w
}

// Block frames child with a titled border.
func (f *Frame) Block(c layout.Constraint, title string, child *Widget) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindBlock
	w.Constraint = c
	w.Title = title
	w.Child = child
	return w
}

// List renders items one per row, highlighting the selected row.
// colors, if non-nil, gives an optional per-item foreground override
// for unselected rows (a zero Color at index i means "use default").
func (f *Frame) List(c layout.Constraint, items []string, colors []cellbuf.Color, selected int) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindList
	w.Constraint = c
	w.Items = items
	w.Colors = colors
	w.Selected = selected
	return w
}

// VLine draws a one-cell-wide vertical rule.
func (f *Frame) VLine(c layout.Constraint) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindVLine
	w.Constraint = c
	return w
}

// HLine draws a one-cell-wide horizontal rule.
func (f *Frame) HLine(c layout.Constraint) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindHLine
	w.Constraint = c
	return w
}

// Input renders an optional prompt, then text, scrolled so the
// cursor stays visible, with a cursor cell drawn in reverse video.
func (f *Frame) Input(c layout.Constraint, text string, cursor int, prompt string) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindInput
	w.Constraint = c
	w.InputText = text
	w.Cursor = cursor
	w.Prompt = prompt
	return w
}

// Gauge renders an optional label and a bracketed bar filled to
// clamp(value, 0, 1), in the given color.
func (f *Frame) Gauge(c layout.Constraint, value float64, label string, color cellbuf.Color) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindGauge
	w.Constraint = c
	w.Value = value
	w.Label = label
	w.Color = color
	return w
}

// Sparkline renders up to width data points as ramp glyphs, rightmost
// point last, in the given color.
func (f *Frame) Sparkline(c layout.Constraint, data []float64, color cellbuf.Color) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindSparkline
	w.Constraint = c
	w.Data = data
	w.Color = color
	return w
}

// Table renders headers on the first row and rows below; widths, if
// nil, is computed per-column from header length.
func (f *Frame) Table(c layout.Constraint, headers []string, rows [][]string, widths []int) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindTable
	w.Constraint = c
	w.Headers = headers
	w.Rows = rows
	w.Widths = widths
	return w
}

// Checkbox renders items with a leading "[x] "/"[ ] " marker per
// checked, highlighting the selected row.
func (f *Frame) Checkbox(c layout.Constraint, items []string, checked []bool, selected int) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindCheckbox
	w.Constraint = c
	w.Items = items
	w.Checked = checked
	w.Selected = selected
	return w
}

// Progress renders label then a bracketed bar filled to clamp(value,
// 0, 1); showPercent appends a rounded "NNN%" suffix.
func (f *Frame) Progress(c layout.Constraint, value float64, label string, showPercent bool) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindProgress
	w.Constraint = c
	w.Value = value
	w.Label = label
	w.ShowPercent = showPercent
	return w
}

// Tabs renders one label per tab; selected is drawn bold-highlighted.
func (f *Frame) Tabs(c layout.Constraint, labels []string, selected int) *Widget {
	w := f.arena.alloc()
	if w == nil {
		return nil
	}
	w.Kind = KindTabs
	w.Constraint = c
	w.Items = labels
	w.Selected = selected
	return w
}
