// Package execx provides bounded subprocess execution for clawq.
// Every external call goes through a Runner so commands can be faked in tests,
// and every call carries a timeout so a stuck tool cannot block the launcher.
package execx

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"
)

// Result holds the outcome of a bounded subprocess run.
// TimedOut is distinct from a spawn failure and from a plain nonzero exit,
// because callers render different messages for each.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	TimedOut bool
	Err      error
}

// Ok reports whether the command ran and exited zero.
func (r Result) Ok() bool {
	return r.Err == nil && !r.TimedOut && r.ExitCode == 0
}

// Runner executes a command and waits for it, bounded by ctx.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) Result
}

// System is the real Runner backed by os/exec.
type System struct{}

// Run executes name with args and captures stdout/stderr separately.
// A context deadline maps to TimedOut; a spawn error maps to exit code 127.
func (System) Run(ctx context.Context, name string, args ...string) Result {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		res.TimedOut = true
		res.ExitCode = 124
		return res
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res
		}
		// Could not start at all (not found, not executable, ...).
		res.ExitCode = 127
		res.Err = err
		return res
	}

	return res
}

// RunTimeout is a convenience wrapper applying a timeout to Run.
func RunTimeout(r Runner, timeout time.Duration, name string, args ...string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return r.Run(ctx, name, args...)
}

// StartDetached launches a process in its own process group with stdio
// detached, so long-lived children (terminals, openers) are not tied to the
// launcher's lifecycle. The process is not waited on.
func StartDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Env = os.Environ()
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid: true,
		Pgid:    0,
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child when it exits so detached launches do not accumulate
	// zombies for the lifetime of the menu loop.
	go func() { _ = cmd.Wait() }()
	return nil
}

// CommandExists checks if a command exists in PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
