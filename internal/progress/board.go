// Package progress shows one live status line per running sync.
//
// Workers register indicators on a shared Board from their own goroutines.
// The Board serializes registration and status changes and hands every
// change, in order, to a single Renderer.
package progress

import (
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// Status of one indicator.
type Status int

const (
	Running Status = iota
	Done
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a status change of the indicator with the given ID. IDs follow
// registration order starting at zero.
type Event struct {
	ID     int
	Label  string
	Status Status
	Err    error
}

// Renderer draws status changes. Board never calls it concurrently.
type Renderer interface {
	Render(Event)
	Close()
}

// Board is the shared, append-only set of indicators for one batch.
type Board struct {
	mu       sync.Mutex
	renderer Renderer
	events   []Event
	closed   bool
}

// Indicator is the handle a worker uses to report its own outcome.
type Indicator struct {
	board *Board
	id    int
}

// New picks a live terminal display when w is a terminal and plain lines otherwise.
func New(w io.Writer) *Board {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return NewBoard(NewTerminal(w))
	}
	return NewBoard(NewPlain(w))
}

// NewBoard returns an empty board drawing through r.
func NewBoard(r Renderer) *Board {
	return &Board{renderer: r}
}

// Track registers a running indicator labelled label.
func (b *Board) Track(label string) *Indicator {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := Event{ID: len(b.events), Label: label, Status: Running}
	b.events = append(b.events, e)
	b.render(e)
	return &Indicator{board: b, id: e.ID}
}

// Done marks the indicator as finished successfully.
func (i *Indicator) Done() {
	i.board.update(i.id, Done, nil)
}

// Fail marks the indicator as failed with err.
func (i *Indicator) Fail(err error) {
	i.board.update(i.id, Failed, err)
}

// Snapshot returns the latest event of every indicator in registration order.
func (b *Board) Snapshot() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event(nil), b.events...)
}

// Close stops the renderer once every worker has reported. Later updates are
// still recorded but no longer drawn.
func (b *Board) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.renderer.Close()
}

func (b *Board) update(id int, status Status, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.events[id]
	e.Status = status
	e.Err = err
	b.events[id] = e
	b.render(e)
}

func (b *Board) render(e Event) {
	if !b.closed {
		b.renderer.Render(e)
	}
}
