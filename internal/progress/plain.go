package progress

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	labelColor  = color.New(color.FgGreen, color.Bold)
	doneColor   = color.New(color.FgGreen)
	failedColor = color.New(color.FgRed)
)

// Plain writes one line per status change. It suits pipes, logs and CI output
// where cursor movement is not available.
type Plain struct {
	w io.Writer
}

// NewPlain returns a renderer writing to w.
func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

// Render prints the new status of one indicator.
func (p *Plain) Render(e Event) {
	label := labelColor.Sprintf("[%s]:", e.Label)
	switch e.Status {
	case Running:
		fmt.Fprintf(p.w, "%s syncing\n", label)
	case Done:
		fmt.Fprintf(p.w, "%s %s\n", label, doneColor.Sprint("done"))
	case Failed:
		fmt.Fprintf(p.w, "%s %s: %v\n", label, failedColor.Sprint("failed"), e.Err)
	}
}

// Close is a no-op; every line is already written.
func (p *Plain) Close() {}
