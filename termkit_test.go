package termkit

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"termkit/cellbuf"
	"termkit/layout"
	"termkit/widget"
)

// newTestApp builds an App without touching a real terminal, for
// exercising Frame/Render/Size in isolation. The App has no decoder,
// so Poll is not usable on it, and the input argument is unused.
func newTestApp(t *testing.T, rows, cols int, input string) (*App, *bytes.Buffer) {
	t.Helper()
	buf, err := cellbuf.New(rows, cols)
	if err != nil {
		t.Fatalf("cellbuf.New: %v", err)
	}
	var out bytes.Buffer
	return &App{
		out:   bufio.NewWriter(&out),
		arena: widget.NewArena(64),
		buf:   buf,
		rows:  rows,
		cols:  cols,
	}, &out
}

func TestAppRenderWritesSingleFrame(t *testing.T) {
	app, out := newTestApp(t, 3, 10, "")

	f := app.Frame()
	root := f.Text(layout.Len(1), "hi")

	if err := app.Render(root); err != nil {
		t.Fatalf("Render: %v", err)
	}

	got := out.String()
	if !strings.HasPrefix(got, "\x1b[H") {
		t.Errorf("output does not start with cursor-home: %q", got[:10])
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("output does not end with SGR reset: %q", got[len(got)-10:])
	}
}

func TestAppSizeReflectsConstruction(t *testing.T) {
	app, _ := newTestApp(t, 24, 80, "")
	rows, cols := app.Size()
	if rows != 24 || cols != 80 {
		t.Errorf("Size() = (%d, %d), want (24, 80)", rows, cols)
	}
}

func TestAppFrameReturnsUsableFrame(t *testing.T) {
	app, _ := newTestApp(t, 5, 5, "")

	f1 := app.Frame()
	if w := f1.Text(layout.Len(1), "a"); w == nil {
		t.Fatal("Text allocation failed on a fresh frame")
	}

	f2 := app.Frame()
	if w := f2.Text(layout.Len(1), "b"); w == nil {
		t.Fatal("Text allocation failed on the next frame")
	}
}

func TestCloseOnNilApp(t *testing.T) {
	var app *App
	if err := app.Close(); err != nil {
		t.Errorf("Close on nil App = %v, want nil", err)
	}
}
