// Package syncer runs a resolved batch of syncs concurrently, one worker per
// sync, each reporting on its own progress indicator.
package syncer

import (
	"errors"
	"fmt"

	"ez-sync/internal/logger"
	"ez-sync/internal/profile"
	"ez-sync/internal/progress"

	"golang.org/x/sync/errgroup"
)

// Result is the outcome of one sync. Err is nil on success.
type Result struct {
	Name profile.Name
	Err  error
}

// Orchestrator fans a batch out to workers and waits for all of them.
type Orchestrator struct {
	transfer Transferer
	board    *progress.Board
}

// New returns an orchestrator copying with t and reporting on board.
func New(t Transferer, board *progress.Board) *Orchestrator {
	return &Orchestrator{transfer: t, board: board}
}

// Run starts one worker per sync and returns once every worker has finished.
// Results are in batch order, one per entry. A failing worker never stops
// its siblings: workers report failures through their Result and never
// return an error to the group.
func (o *Orchestrator) Run(batch []profile.Sync) []Result {
	logger.Debug("[DEBUG] Starting %d sync(s)\n", len(batch))

	results := make([]Result, len(batch))
	var g errgroup.Group
	for i, s := range batch {
		i, s := i, s
		g.Go(func() error {
			results[i] = o.sync(s)
			return nil
		})
	}
	_ = g.Wait()

	logger.Debug("[DEBUG] Finished %d sync(s)\n", len(batch))
	return results
}

func (o *Orchestrator) sync(s profile.Sync) Result {
	indicator := o.board.Track(s.Name.String())
	logger.Debug("[DEBUG] Syncing %s: %s -> %s\n", s.Name, s.Source, s.Target)

	if err := o.transfer.Transfer(s); err != nil {
		indicator.Fail(err)
		return Result{Name: s.Name, Err: fmt.Errorf("%s: %w", s.Name, err)}
	}

	indicator.Done()
	return Result{Name: s.Name}
}

// Failed joins the errors of every failed result, or returns nil when all succeeded.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errors.Join(errs...)
}
