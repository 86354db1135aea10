package syncer

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"ez-sync/internal/logger"
	"ez-sync/internal/profile"
)

var (
	// ErrSpawn means the transfer tool could not be started at all.
	ErrSpawn = errors.New("failed to start transfer tool")
	// ErrExecution means the transfer tool ran and exited non-zero.
	ErrExecution = errors.New("transfer tool failed")
)

// Transferer copies one resolved sync. Implementations must be safe to call
// from several goroutines at once.
type Transferer interface {
	Transfer(profile.Sync) error
}

// Rsync runs the rsync binary once per sync.
//
// Source and target are passed through verbatim, so rsync's trailing slash
// rule applies: "dir/" copies the contents of dir into the target while
// "dir" copies dir itself into the target.
type Rsync struct {
	Binary string
	Flags  []string
}

// NewRsync mirrors the source onto the target: archive mode, and files
// missing from the source are deleted from the target.
func NewRsync() *Rsync {
	return &Rsync{
		Binary: "rsync",
		Flags:  []string{"-a", "--delete"},
	}
}

// Command builds the invocation for s without running it. Paths follow "--"
// so one starting with a dash is never read as an option.
func (r *Rsync) Command(s profile.Sync) *exec.Cmd {
	args := make([]string, 0, len(r.Flags)+3)
	args = append(args, r.Flags...)
	args = append(args, "--", s.Source, s.Target)
	return exec.Command(r.Binary, args...)
}

// Transfer runs rsync and waits for it. There is no timeout: a hanging
// transfer blocks only its own worker.
func (r *Rsync) Transfer(s profile.Sync) error {
	cmd := r.Command(s)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(cmd.Args, " "))

	output, err := cmd.CombinedOutput()
	if err == nil {
		logger.Debug("[DEBUG] %s output: %s\n", s.Name, output)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Tool:   r.Binary,
			Code:   exitErr.ExitCode(),
			Output: strings.TrimSpace(string(output)),
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrSpawn, r.Binary, err)
}

// ExitError reports a transfer that ran but exited with a non-zero status.
// It matches ErrExecution with errors.Is.
type ExitError struct {
	Tool   string
	Code   int
	Output string
}

// Error includes the first line of the tool's output, which usually names the cause.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Tool, e.Code)
	if line, _, _ := strings.Cut(e.Output, "\n"); line != "" {
		msg += ": " + line
	}
	return msg
}

// Unwrap lets errors.Is match ErrExecution.
func (e *ExitError) Unwrap() error {
	return ErrExecution
}
