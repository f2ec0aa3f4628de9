// Command hello is the minimal example: render static text and wait
// for a keypress.
package main

import (
	"fmt"
	"os"

	"termkit"
	"termkit/input"
	"termkit/layout"
)

func main() {
	app, err := termkit.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "hello:", err)
		os.Exit(1)
	}
	defer app.Close()

	f := app.Frame()
	root := f.VBox(layout.FillOf(1),
		f.Text(layout.Len(1), "Hello, termkit!"),
		f.Text(layout.FillOf(1), "Press any key to exit."),
	)
	if err := app.Render(root); err != nil {
		fmt.Fprintln(os.Stderr, "hello:", err)
		os.Exit(1)
	}

	for {
		ev, err := app.Poll(-1)
		if err != nil {
			return
		}
		if ev.Type == input.EventKey {
			return
		}
	}
}
