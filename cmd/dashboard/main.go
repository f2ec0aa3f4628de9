// Command dashboard renders a live CPU/memory/process view: two
// gauge+sparkline panels and a process table, refreshed on a 500ms
// timer and redrawn immediately on resize or any other key; 'q' or
// Escape quits.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"termkit"
	"termkit/cellbuf"
	"termkit/input"
	"termkit/layout"
	"termkit/widget"
)

const historySize = 60
const numProcs = 10

type appState struct {
	cpuUsage   float64
	memUsage   float64
	cpuHistory []float64
	memHistory []float64
	procNames  []string
	procRows   [][]string
}

func newState() *appState {
	names := []string{"init", "systemd", "bash", "vim", "htop", "chrome", "firefox", "slack", "docker", "node"}
	s := &appState{
		cpuUsage:  0.3,
		memUsage:  0.5,
		procNames: names,
	}
	s.procRows = make([][]string, numProcs)
	for i, name := range names {
		s.procRows[i] = []string{
			fmt.Sprintf("%d", 1000+i*100),
			name,
			fmt.Sprintf("%.1f", rand.Float64()*10),
			fmt.Sprintf("%.1f", rand.Float64()*5),
		}
	}
	return s
}

func (s *appState) update() {
	s.cpuUsage = walk(s.cpuUsage, 0.1, 0.05, 0.95)
	s.memUsage = walk(s.memUsage, 0.05, 0.2, 0.9)

	s.cpuHistory = pushHistory(s.cpuHistory, s.cpuUsage)
	s.memHistory = pushHistory(s.memHistory, s.memUsage)

	for i := range s.procRows {
		s.procRows[i][2] = fmt.Sprintf("%.1f", rand.Float64()*10)
		s.procRows[i][3] = fmt.Sprintf("%.1f", rand.Float64()*5)
	}
}

func walk(v, step, min, max float64) float64 {
	v += (rand.Float64() - 0.5) * step
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) < historySize {
		return append(h, v)
	}
	copy(h, h[1:])
	h[len(h)-1] = v
	return h
}

func (s *appState) status() string {
	return fmt.Sprintf("CPU: %.1f%% | MEM: %.1f%% | q:quit", s.cpuUsage*100, s.memUsage*100)
}

// gaugeColor blends green to red across the gauge's fill level using
// a perceptual HSV ramp, rather than the original's fixed palette
// index, so the color itself communicates load.
func gaugeColor(value float64) cellbuf.Color {
	c := colorful.Hsv(120*(1-value), 0.8, 0.9)
	r, g, b := c.RGB255()
	return cellbuf.RGB(r, g, b)
}

func view(f *widget.Frame, s *appState) *widget.Widget {
	cpuPanel := f.Block(layout.Len(5), "CPU",
		f.VBox(layout.FillOf(1),
			f.Gauge(layout.Len(1), s.cpuUsage, "", gaugeColor(s.cpuUsage)),
			f.Sparkline(layout.FillOf(1), s.cpuHistory, gaugeColor(s.cpuUsage)),
		),
	)

	memPanel := f.Block(layout.Len(5), "Memory",
		f.VBox(layout.FillOf(1),
			f.Gauge(layout.Len(1), s.memUsage, "", gaugeColor(s.memUsage)),
			f.Sparkline(layout.FillOf(1), s.memHistory, gaugeColor(s.memUsage)),
		),
	)

	headers := []string{"PID", "NAME", "CPU%", "MEM%"}
	widths := []int{8, 12, 8, 8}
	procPanel := f.Block(layout.FillOf(1), "Processes",
		f.Table(layout.FillOf(1), headers, s.procRows, widths),
	)

	status := f.Text(layout.Len(1), s.status())

	return f.VBox(layout.FillOf(1), cpuPanel, memPanel, procPanel, status)
}

func main() {
	app, err := termkit.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "dashboard:", err)
		os.Exit(1)
	}
	defer app.Close()

	state := newState()
	state.update()

	render := func() {
		f := app.Frame()
		root := view(f, state)
		app.Render(root)
	}
	render()

	for {
		ev, err := app.Poll(500)
		if err != nil {
			break
		}

		switch ev.Type {
		case input.EventKey:
			if ev.Key.Code == input.KeyEscape {
				return
			}
			if ev.Key.Code == input.KeyChar && ev.Key.Ch == 'q' {
				return
			}
		case input.EventResize, input.EventNone:
		}

		state.update()
		render()
	}
}
