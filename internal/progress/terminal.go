package progress

import (
	"io"
	"strings"

	"ez-sync/internal/logger"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	spinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Terminal redraws every indicator in place with a shared spinner. Status
// changes reach the bubbletea event loop through Program.Send, so the
// program is the only goroutine that ever writes to the terminal.
type Terminal struct {
	program *tea.Program
	done    chan struct{}
}

type eventMsg Event

// NewTerminal starts the display on w. It reads no input and installs no
// signal handler: an interrupt terminates the whole process.
func NewTerminal(w io.Writer) *Terminal {
	t := &Terminal{done: make(chan struct{})}
	t.program = tea.NewProgram(newModel(),
		tea.WithOutput(w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	go func() {
		defer close(t.done)
		if _, err := t.program.Run(); err != nil {
			logger.Debug("[DEBUG] Progress display stopped: %v\n", err)
		}
	}()
	return t
}

// Render forwards e to the display loop.
func (t *Terminal) Render(e Event) {
	t.program.Send(eventMsg(e))
}

// Close draws the final state and waits for the display to exit.
func (t *Terminal) Close() {
	t.program.Quit()
	<-t.done
}

type model struct {
	spinner spinner.Model
	tasks   []Event
}

func newModel() model {
	return model{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinStyle)),
	}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		for len(m.tasks) <= msg.ID {
			m.tasks = append(m.tasks, Event{ID: len(m.tasks)})
		}
		m.tasks[msg.ID] = Event(msg)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	for _, e := range m.tasks {
		if e.Label == "" {
			continue
		}
		b.WriteString(labelStyle.Render("[" + e.Label + "]:"))
		b.WriteString(" ")
		switch e.Status {
		case Running:
			b.WriteString(m.spinner.View())
		case Done:
			b.WriteString(doneStyle.Render("done"))
		case Failed:
			b.WriteString(failedStyle.Render("failed"))
			if e.Err != nil {
				b.WriteString(" " + e.Err.Error())
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
