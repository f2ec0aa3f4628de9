package widget

import (
	"math"
	"strings"

	"termkit/cellbuf"
	"termkit/layout"
)

// Theme colors, per spec §6: borders & rules indexed 8; titles
// indexed 11 bold; prompts indexed 14 bold; selected row fg 0 bg 14
// bold; checked label indexed 8; progress fill indexed 10, empty
// indexed 8.
var (
	colorBorder      = cellbuf.Indexed(8)
	colorTitle       = cellbuf.Indexed(11)
	colorPrompt      = cellbuf.Indexed(14)
	colorSelectedFg  = cellbuf.Indexed(0)
	colorSelectedBg  = cellbuf.Indexed(14)
	colorCheckedText = cellbuf.Indexed(8)
	colorProgressFg  = cellbuf.Indexed(10)
	colorProgressBg  = cellbuf.Indexed(8)
	colorCursorFg    = cellbuf.Indexed(0)
	colorCursorBg    = cellbuf.Indexed(15)
)

const sparkRamp = " ._-=*#"

// Render draws w into buf within area, recursively. A nil widget or
// an empty area is a no-op; a container whose layout cannot be
// solved (overflow, invalid constraint) skips that subtree rather
// than aborting the frame.
func Render(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	if w == nil || area.Empty() {
		return
	}

	switch w.Kind {
	case KindVBox, KindHBox:
		renderBox(w, buf, area)
	case KindText:
		renderText(w, buf, area)
	case KindBlock:
		renderBlock(w, buf, area)
	case KindList:
		renderList(w, buf, area)
	case KindVLine:
		renderVLine(buf, area)
	case KindHLine:
		renderHLine(buf, area)
	case KindInput:
		renderInput(w, buf, area)
	case KindGauge:
		renderGauge(w, buf, area)
	case KindSparkline:
		renderSparkline(w, buf, area)
	case KindTable:
		renderTable(w, buf, area)
	case KindCheckbox:
		renderCheckbox(w, buf, area)
	case KindProgress:
		renderProgress(w, buf, area)
	case KindTabs:
		renderTabs(w, buf, area)
	}
}

func renderBox(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	n := len(w.Children)
	if n == 0 {
		return
	}
	dir := layout.Vertical
	if w.Kind == KindHBox {
		dir = layout.Horizontal
	}
	constraints := make([]layout.Constraint, n)
	for i, child := range w.Children {
		if child != nil {
			constraints[i] = child.Constraint
		}
	}
	areas, err := layout.Split(area, dir, constraints)
	if err != nil {
		return
	}
	for i, child := range w.Children {
		Render(child, buf, areas[i])
	}
}

func renderText(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	lines := strings.Split(w.Text, "\n")
	for row := 0; row < int(area.Height) && row < len(lines); row++ {
		writeClipped(buf, int(area.Y)+row, int(area.X), int(area.Width), lines[row], cellbuf.Default, cellbuf.Default, 0)
	}
}

func renderBlock(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	x, y := int(area.X), int(area.Y)
	width, height := int(area.Width), int(area.Height)

	buf.SetStyled(y, x, '+', colorBorder, cellbuf.Default, 0)
	for c := 1; c < width-1; c++ {
		buf.SetStyled(y, x+c, '-', colorBorder, cellbuf.Default, 0)
	}
	if width > 1 {
		buf.SetStyled(y, x+width-1, '+', colorBorder, cellbuf.Default, 0)
	}

	if w.Title != "" && width > 4 {
		title := w.Title
		maxTitle := width - 4
		if len(title) > maxTitle {
			title = title[:maxTitle]
		}
		buf.SetStyled(y, x+1, ' ', cellbuf.Default, cellbuf.Default, 0)
		for i := 0; i < len(title); i++ {
			buf.SetStyled(y, x+2+i, title[i], colorTitle, cellbuf.Default, cellbuf.AttrBold)
		}
		buf.SetStyled(y, x+2+len(title), ' ', cellbuf.Default, cellbuf.Default, 0)
	}

	for r := 1; r < height-1; r++ {
		buf.SetStyled(y+r, x, '|', colorBorder, cellbuf.Default, 0)
		if width > 1 {
			buf.SetStyled(y+r, x+width-1, '|', colorBorder, cellbuf.Default, 0)
		}
	}

	if height > 1 {
		bottom := y + height - 1
		buf.SetStyled(bottom, x, '+', colorBorder, cellbuf.Default, 0)
		for c := 1; c < width-1; c++ {
			buf.SetStyled(bottom, x+c, '-', colorBorder, cellbuf.Default, 0)
		}
		if width > 1 {
			buf.SetStyled(bottom, x+width-1, '+', colorBorder, cellbuf.Default, 0)
		}
	}

	if w.Child != nil && width > 2 && height > 2 {
		inner := layout.Rect{X: uint16(x + 1), Y: uint16(y + 1), Width: uint16(width - 2), Height: uint16(height - 2)}
		Render(w.Child, buf, inner)
	}
}

func renderList(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	for i, item := range w.Items {
		if i >= int(area.Height) {
			break
		}
		row := int(area.Y) + i
		isSelected := i == w.Selected

		fg, bg, attrs := cellbuf.Default, cellbuf.Default, cellbuf.Attrs(0)
		if isSelected {
			fg, bg, attrs = colorSelectedFg, colorSelectedBg, cellbuf.AttrBold
			for c := 0; c < int(area.Width); c++ {
				buf.SetStyled(row, int(area.X)+c, ' ', fg, bg, attrs)
			}
		} else if i < len(w.Colors) && w.Colors[i] != (cellbuf.Color{}) {
			fg = w.Colors[i]
		}

		writeClipped(buf, row, int(area.X), int(area.Width), item, fg, bg, attrs)
	}
}

func renderVLine(buf *cellbuf.Buffer, area layout.Rect) {
	for r := 0; r < int(area.Height); r++ {
		buf.SetStyled(int(area.Y)+r, int(area.X), '|', colorBorder, cellbuf.Default, 0)
	}
}

func renderHLine(buf *cellbuf.Buffer, area layout.Rect) {
	for c := 0; c < int(area.Width); c++ {
		buf.SetStyled(int(area.Y), int(area.X)+c, '-', colorBorder, cellbuf.Default, 0)
	}
}

func renderInput(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	x, y, width := int(area.X), int(area.Y), int(area.Width)

	promptLen := len(w.Prompt)
	if promptLen > 0 {
		writeClipped(buf, y, x, width, w.Prompt, colorPrompt, cellbuf.Default, cellbuf.AttrBold)
	}

	textX := x + promptLen
	available := width - promptLen
	if available <= 0 {
		return
	}

	text := w.InputText
	cursor := w.Cursor
	scrollStart := 0
	if cursor >= available {
		scrollStart = cursor - available + 1
	}
	visible := text
	if scrollStart < len(visible) {
		visible = visible[scrollStart:]
	} else {
		visible = ""
	}
	writeClipped(buf, y, textX, available, visible, cellbuf.Default, cellbuf.Default, 0)

	cursorCol := textX + (cursor - scrollStart)
	if cursorCol < textX || cursorCol >= textX+available {
		return
	}
	ch := byte(' ')
	if cursor >= 0 && cursor < len(text) {
		ch = text[cursor]
	}
	buf.SetStyled(y, cursorCol, ch, colorCursorFg, colorCursorBg, 0)
}

func renderGauge(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	x, y, width := int(area.X), int(area.Y), int(area.Width)

	barX := x
	if w.Label != "" {
		writeClipped(buf, y, x, width, w.Label, cellbuf.Default, cellbuf.Default, 0)
		barX = x + len(w.Label)
	}
	barWidth := width - (barX - x)
	if barWidth < 2 {
		return
	}

	value := clamp01(w.Value)
	fillCells := barWidth - 2
	filled := int(float64(fillCells) * value)

	buf.SetStyled(y, barX, '[', cellbuf.Default, cellbuf.Default, 0)
	for i := 0; i < fillCells; i++ {
		ch := byte(' ')
		style := cellbuf.Default
		if i < filled {
			ch = '='
			style = w.Color
		}
		buf.SetStyled(y, barX+1+i, ch, style, cellbuf.Default, 0)
	}
	buf.SetStyled(y, barX+barWidth-1, ']', cellbuf.Default, cellbuf.Default, 0)
}

func renderSparkline(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	width := int(area.Width)
	n := len(w.Data)
	visible := n
	if visible > width {
		visible = width
	}
	start := n - visible
	for i := 0; i < visible; i++ {
		v := clamp01(w.Data[start+i])
		level := int(v * 6)
		if level > 6 {
			level = 6
		}
		buf.SetStyled(int(area.Y), int(area.X)+i, sparkRamp[level], w.Color, cellbuf.Default, 0)
	}
}

func renderTable(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	widths := w.Widths
	if widths == nil {
		widths = make([]int, len(w.Headers))
		for i, h := range w.Headers {
			widths[i] = len(h) + 2
		}
	}

	limit := int(area.X) + int(area.Width)

	colX := int(area.X)
	for c, h := range w.Headers {
		if c >= len(widths) || colX >= limit {
			break
		}
		cw := clampWidth(widths[c], colX, limit)
		writeClipped(buf, int(area.Y), colX, cw, h, colorPrompt, cellbuf.Default, cellbuf.AttrBold)
		colX += widths[c]
	}

	for r, row := range w.Rows {
		rowY := int(area.Y) + 1 + r
		if rowY >= int(area.Y)+int(area.Height) {
			break
		}
		colX := int(area.X)
		for c, cell := range row {
			if c >= len(widths) || colX >= limit {
				break
			}
			cw := clampWidth(widths[c], colX, limit)
			writeClipped(buf, rowY, colX, cw, cell, cellbuf.Default, cellbuf.Default, 0)
			colX += widths[c]
		}
	}
}

func clampWidth(w, colX, limit int) int {
	if colX+w > limit {
		w = limit - colX
	}
	if w < 0 {
		return 0
	}
	return w
}

func renderCheckbox(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	for i, item := range w.Items {
		if i >= int(area.Height) {
			break
		}
		row := int(area.Y) + i
		checked := i < len(w.Checked) && w.Checked[i]

		marker := "[ ] "
		if checked {
			marker = "[x] "
		}
		text := marker + item

		isSelected := i == w.Selected
		fg, bg, attrs := cellbuf.Default, cellbuf.Default, cellbuf.Attrs(0)
		if isSelected {
			fg, bg, attrs = colorSelectedFg, colorSelectedBg, cellbuf.AttrBold
			for c := 0; c < int(area.Width); c++ {
				buf.SetStyled(row, int(area.X)+c, ' ', fg, bg, attrs)
			}
		} else if checked {
			fg = colorCheckedText
		}

		writeClipped(buf, row, int(area.X), int(area.Width), text, fg, bg, attrs)
	}
}

func renderProgress(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	x, y, width := int(area.X), int(area.Y), int(area.Width)

	suffix := ""
	if w.ShowPercent {
		suffix = percentSuffix(w.Value)
	}

	barX := x
	if w.Label != "" {
		writeClipped(buf, y, x, width, w.Label, cellbuf.Default, cellbuf.Default, 0)
		barX = x + len(w.Label)
	}
	barWidth := width - (barX - x) - len(suffix)
	if barWidth < 2 {
		return
	}

	value := clamp01(w.Value)
	fillCells := barWidth - 2
	filled := int(float64(fillCells) * value)

	buf.SetStyled(y, barX, '[', cellbuf.Default, cellbuf.Default, 0)
	for i := 0; i < fillCells; i++ {
		if i < filled {
			buf.SetStyled(y, barX+1+i, '#', colorProgressFg, cellbuf.Default, 0)
		} else {
			buf.SetStyled(y, barX+1+i, '-', colorProgressBg, cellbuf.Default, 0)
		}
	}
	buf.SetStyled(y, barX+barWidth-1, ']', cellbuf.Default, cellbuf.Default, 0)

	if suffix != "" {
		writeClipped(buf, y, barX+barWidth, len(suffix), suffix, cellbuf.Default, cellbuf.Default, 0)
	}
}

func percentSuffix(value float64) string {
	pct := int(math.Round(value * 100))
	return " " + itoa(pct) + "%"
}

func renderTabs(w *Widget, buf *cellbuf.Buffer, area layout.Rect) {
	col := int(area.X)
	limit := int(area.X) + int(area.Width)
	for i, label := range w.Items {
		if col >= limit {
			break
		}
		isSelected := i == w.Selected
		var text string
		var fg cellbuf.Color
		var attrs cellbuf.Attrs
		if isSelected {
			text = "[" + label + "]"
			fg, attrs = colorPrompt, cellbuf.AttrBold
		} else {
			text = " " + label + " "
			fg = colorCheckedText
		}
		writeClipped(buf, int(area.Y), col, limit-col, text, fg, cellbuf.Default, attrs)
		col += len(text) + 1
	}
}

// writeClipped writes s starting at (row, x), stopping after min(len(s), width) bytes.
func writeClipped(buf *cellbuf.Buffer, row, x, width int, s string, fg, bg cellbuf.Color, attrs cellbuf.Attrs) {
	for i := 0; i < len(s) && i < width; i++ {
		buf.SetStyled(row, x+i, s[i], fg, bg, attrs)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// itoa avoids pulling in strconv for a single non-negative int format
// used only here; kept tiny and local.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
