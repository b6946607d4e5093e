package docker

import "fmt"

// NotDefinedError means there is no environment here at all: the probe
// subprocess could not even run (missing binaries, no compose project).
// Distinct from a container that exists but is down.
type NotDefinedError struct{}

func (e *NotDefinedError) Error() string {
	return "no Docker environment found here, install the environment first."
}

// NotStartedError means the target container is down for an operation that
// requires it up. The caller may start the environment and retry; this layer
// does not.
type NotStartedError struct {
	Container string
}

func (e *NotStartedError) Error() string {
	return fmt.Sprintf("container %s is not started", e.Container)
}

// TerminalError means the invoking environment cannot host an interactive
// terminal session (stdin is not a TTY).
type TerminalError struct{}

func (e *TerminalError) Error() string {
	return "an interactive terminal is required for this command, stdin is not a TTY."
}
