// Package runner centralizes subprocess execution for the CLI.
//
// Every external command (docker, docker-compose, composer, mutagen) goes
// through this package so that timeout, environment injection, output capture,
// and exit-code mapping stay consistent across the commands that shell out.
package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"setup-magento/internal/logger"
)

const (
	// SoftTimeoutExitCode is reported when a process is killed because its
	// deadline expired. It mirrors the exit status of GNU timeout, and it is
	// a signal rather than a failure: callers such as the install sync-wait
	// loop treat it as "still working" and retry.
	SoftTimeoutExitCode = 124

	// CouldNotStartExitCode is reported when the process could not be
	// spawned at all (binary missing, no working directory). Callers use it
	// to tell "the tool ran and failed" apart from "there is nothing to run".
	CouldNotStartExitCode = -1
)

// Result describes one finished (or failed-to-start) subprocess invocation.
// It is produced per call and discarded by callers; nothing here is persisted.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

// Succeeded reports whether the process ran to completion with exit status 0.
func (r Result) Succeeded() bool {
	return r.ExitCode == 0 && r.Err == nil
}

// TimedOut reports whether the process was cut off by its deadline.
func (r Result) TimedOut() bool {
	return r.ExitCode == SoftTimeoutExitCode
}

// CouldNotStart reports whether the process never spawned.
func (r Result) CouldNotStart() bool {
	return r.ExitCode == CouldNotStartExitCode
}

// Output returns the captured stdout with surrounding whitespace trimmed.
func (r Result) Output() string {
	return strings.TrimSpace(r.Stdout)
}

// Options tunes a single invocation.
type Options struct {
	Timeout time.Duration // zero means no deadline
	Env     []string      // appended to the parent environment
	Dir     string        // working directory, empty means inherit
	Stdin   io.Reader     // nil means no stdin
	Capture bool          // capture stdout/stderr instead of streaming them to the terminal
}

// Runner is the execution contract the probe, executor, and prerequisite
// registry depend on. Tests substitute a scripted fake.
type Runner interface {
	Run(argv []string, opts Options) Result
	RunInteractive(argv []string, opts Options) error
	Create(argv []string, opts Options) (*exec.Cmd, context.CancelFunc)
}

// ExecRunner runs subprocesses with os/exec.
type ExecRunner struct{}

// New returns a Runner backed by os/exec.
func New() *ExecRunner {
	return &ExecRunner{}
}

// Run executes argv and blocks until it exits or the deadline fires.
func (e *ExecRunner) Run(argv []string, opts Options) Result {
	cmd, cancel := e.Create(argv, opts)
	defer cancel()

	var outBuf, errBuf bytes.Buffer
	if opts.Capture {
		cmd.Stdout = &outBuf
		cmd.Stderr = &errBuf
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	res := Result{
		ExitCode: exitCode(cmd, err),
		Stdout:   outBuf.String(),
		Stderr:   errBuf.String(),
		Err:      err,
	}
	if res.TimedOut() {
		// Deadline expiry is a soft signal, not a failure to report upward.
		res.Err = nil
	}
	return res
}

// RunInteractive attaches the subprocess to the caller's terminal and blocks
// until the session exits. No deadline is applied: the user decides when an
// interactive session ends.
func (e *ExecRunner) RunInteractive(argv []string, opts Options) error {
	logger.Debug("[DEBUG] Running interactively: %s\n", strings.Join(argv, " "))
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Dir = opts.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Create returns a fully configured but unstarted process together with the
// cancel function releasing its deadline. Callers that need to stream data
// through the process (e.g. piping a SQL dump into mysql) attach their own
// stdin/stdout before starting it. The cancel function must be called once
// the process is done.
func (e *ExecRunner) Create(argv []string, opts Options) (*exec.Cmd, context.CancelFunc) {
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(argv, " "))

	ctx := context.Background()
	cancel := context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), opts.Env...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	return cmd, cancel
}

// exitCode maps the error from (*exec.Cmd).Run onto the Result exit codes.
func exitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if cmd.ProcessState != nil && !cmd.ProcessState.Exited() {
			// Killed rather than exited; with a context-backed command that
			// means the deadline fired.
			return SoftTimeoutExitCode
		}
		return exitErr.ExitCode()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return SoftTimeoutExitCode
	}
	return CouldNotStartExitCode
}
