// Command tasks is a small checklist app: navigate with j/k or the
// arrow keys, a to add, x or space to toggle, d to delete, q or
// Escape to quit.
package main

import (
	"fmt"
	"os"

	"termkit"
	"termkit/input"
	"termkit/layout"
	"termkit/widget"
)

type task struct {
	text      string
	completed bool
}

type appState struct {
	tasks     []task
	selected  int
	input     string
	cursor    int
	inputMode bool
}

func newState() *appState {
	s := &appState{
		tasks: []task{
			{text: "Learn the widget tree", completed: true},
			{text: "Build a TUI application"},
			{text: "Add more features"},
		},
	}
	return s
}

func (s *appState) progress() float64 {
	if len(s.tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range s.tasks {
		if t.completed {
			completed++
		}
	}
	return float64(completed) / float64(len(s.tasks))
}

func (s *appState) status() string {
	if s.inputMode {
		return "Type task, Enter to add, Esc to cancel"
	}
	completed := 0
	for _, t := range s.tasks {
		if t.completed {
			completed++
		}
	}
	return fmt.Sprintf("%d/%d done | a:add x:toggle d:delete q:quit", completed, len(s.tasks))
}

func (s *appState) addTask(text string) {
	if text == "" {
		return
	}
	s.tasks = append(s.tasks, task{text: text})
}

func (s *appState) deleteTask() {
	if len(s.tasks) == 0 || s.selected >= len(s.tasks) {
		return
	}
	s.tasks = append(s.tasks[:s.selected], s.tasks[s.selected+1:]...)
	if s.selected > 0 && s.selected >= len(s.tasks) {
		s.selected--
	}
}

func (s *appState) toggleTask() {
	if len(s.tasks) == 0 || s.selected >= len(s.tasks) {
		return
	}
	s.tasks[s.selected].completed = !s.tasks[s.selected].completed
}

func (s *appState) insertChar(ch byte) {
	s.input = s.input[:s.cursor] + string(ch) + s.input[s.cursor:]
	s.cursor++
}

func (s *appState) deleteChar() {
	if s.cursor == 0 {
		return
	}
	s.input = s.input[:s.cursor-1] + s.input[s.cursor:]
	s.cursor--
}

func view(f *widget.Frame, s *appState) *widget.Widget {
	var content *widget.Widget
	if len(s.tasks) == 0 {
		content = f.Text(layout.FillOf(1), "No tasks. Press 'a' to add one.")
	} else {
		labels := make([]string, len(s.tasks))
		checked := make([]bool, len(s.tasks))
		for i, t := range s.tasks {
			labels[i] = t.text
			checked[i] = t.completed
		}
		content = f.Checkbox(layout.FillOf(1), labels, checked, s.selected)
	}

	tasksPanel := f.Block(layout.FillOf(1), "Tasks", content)
	progress := f.Progress(layout.Len(1), s.progress(), "Progress ", true)
	status := f.Text(layout.Len(1), s.status())

	if s.inputMode {
		return f.VBox(layout.FillOf(1),
			tasksPanel,
			f.HLine(layout.Len(1)),
			f.Input(layout.Len(1), s.input, s.cursor, "New: "),
			progress,
			status,
		)
	}
	return f.VBox(layout.FillOf(1), tasksPanel, progress, status)
}

func main() {
	app, err := termkit.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "tasks:", err)
		os.Exit(1)
	}
	defer app.Close()

	state := newState()

	render := func() {
		f := app.Frame()
		root := view(f, state)
		app.Render(root)
	}
	render()

	for {
		ev, err := app.Poll(-1)
		if err != nil {
			break
		}

		redraw := false
		switch ev.Type {
		case input.EventKey:
			var quit bool
			redraw, quit = handleKey(state, ev.Key)
			if quit {
				return
			}
		case input.EventResize:
			redraw = true
		case input.EventNone:
		}

		if redraw {
			render()
		}
	}
}

// handleKey applies ev to state, reporting whether the view needs a
// redraw and whether the program should quit.
func handleKey(s *appState, ev input.KeyEvent) (redraw, quit bool) {
	if s.inputMode {
		switch ev.Code {
		case input.KeyEscape:
			s.inputMode = false
			s.input = ""
			s.cursor = 0
			return true, false
		case input.KeyEnter:
			s.addTask(s.input)
			s.inputMode = false
			s.input = ""
			s.cursor = 0
			return true, false
		case input.KeyBackspace:
			s.deleteChar()
			return true, false
		case input.KeyChar:
			if ev.Ch >= 32 && ev.Ch < 127 {
				s.insertChar(ev.Ch)
				return true, false
			}
		}
		return false, false
	}

	switch ev.Code {
	case input.KeyChar:
		switch ev.Ch {
		case 'q':
			return false, true
		case 'a':
			s.inputMode = true
			return true, false
		case 'x', ' ':
			s.toggleTask()
			return true, false
		case 'd':
			s.deleteTask()
			return true, false
		case 'j':
			if s.selected < len(s.tasks)-1 {
				s.selected++
				return true, false
			}
		case 'k':
			if s.selected > 0 {
				s.selected--
				return true, false
			}
		}
	case input.KeyDown:
		if s.selected < len(s.tasks)-1 {
			s.selected++
			return true, false
		}
	case input.KeyUp:
		if s.selected > 0 {
			s.selected--
			return true, false
		}
	case input.KeyEscape:
		return false, true
	}
	return false, false
}
