package docker

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/mattn/go-isatty"

	"setup-magento/internal/runner"
)

// Exec runs a shell command inside the named container and blocks until it
// finishes. Liveness is re-probed first; a cached prerequisite snapshot is
// never trusted for this decision. When capture is false, output streams to
// the caller's terminal.
func (c *Compose) Exec(container, command string, capture bool) (runner.Result, error) {
	up, err := c.IsUp(container)
	if err != nil {
		return runner.Result{}, err
	}
	if !up {
		return runner.Result{}, &NotStartedError{Container: container}
	}
	return c.run.Run(c.execArgv(container, command), runner.Options{
		Timeout: execTimeout,
		Capture: capture,
		Env:     c.env(),
	}), nil
}

// Create prepares the same in-container invocation as Exec but returns the
// unstarted process, letting the caller stream data through it (the database
// import pipes a decompressed dump into mysql this way). The cancel function
// must be called once the process is done.
func (c *Compose) Create(container, command string, stdin io.Reader) (*exec.Cmd, context.CancelFunc, error) {
	up, err := c.IsUp(container)
	if err != nil {
		return nil, nil, err
	}
	if !up {
		return nil, nil, &NotStartedError{Container: container}
	}
	cmd, cancel := c.run.Create(c.execArgv(container, command), runner.Options{
		Timeout: importTimeout,
		Stdin:   stdin,
		Env:     c.env(),
	})
	return cmd, cancel, nil
}

// OpenTerminal attaches an interactive shell session to the container,
// blocking until the remote shell exits. Both preconditions (container up,
// stdin a real terminal) are verified before any subprocess spawns. The
// user override is optional; pass "" for the image default user.
func (c *Compose) OpenTerminal(container, user string) error {
	up, err := c.IsUp(container)
	if err != nil {
		return err
	}
	if !up {
		return &NotStartedError{Container: container}
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return &TerminalError{}
	}

	argv := []string{"docker-compose", "exec"}
	if user != "" {
		argv = append(argv, "-u", user)
	}
	argv = append(argv, container, "bash")
	return c.run.RunInteractive(argv, runner.Options{Env: c.env()})
}

// AppUser returns the user/group pair the php container commands run as,
// for callers that open terminals with the same identity Exec uses.
func AppUser() string {
	return appUser
}
