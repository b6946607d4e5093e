package docker

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"setup-magento/internal/runner"
)

// fakeRunner replays scripted results and records every invocation.
type fakeRunner struct {
	results []runner.Result
	calls   [][]string
}

func (f *fakeRunner) Run(argv []string, opts runner.Options) runner.Result {
	f.calls = append(f.calls, argv)
	if len(f.results) == 0 {
		return runner.Result{}
	}
	res := f.results[0]
	f.results = f.results[1:]
	return res
}

func (f *fakeRunner) RunInteractive(argv []string, opts runner.Options) error {
	f.calls = append(f.calls, argv)
	return nil
}

func (f *fakeRunner) Create(argv []string, opts runner.Options) (*exec.Cmd, context.CancelFunc) {
	f.calls = append(f.calls, argv)
	return exec.Command("true"), func() {}
}

func ok(stdout string) runner.Result {
	return runner.Result{ExitCode: 0, Stdout: stdout}
}

func cannotStart() runner.Result {
	return runner.Result{ExitCode: runner.CouldNotStartExitCode, Err: errors.New("exec: not found")}
}

func TestIsUpFalseOnEmptyComposeOutput(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("")}}
	c := New(f, "magento")
	up, err := c.IsUp(ContainerMySQL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up {
		t.Fatalf("empty compose output must mean down")
	}
	if len(f.calls) != 1 {
		t.Fatalf("docker-wide listing must be skipped when compose reports nothing, got %d calls", len(f.calls))
	}
}

func TestIsUpTrueWhenDockerConfirmsComposeID(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("abc123\n"), ok("zzz999\nabc123\n")}}
	c := New(f, "magento")
	up, err := c.IsUp(ContainerMySQL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !up {
		t.Fatalf("expected container to be up")
	}
}

func TestIsUpFalseWhenDockerDoesNotListComposeID(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("abc123\n"), ok("zzz999\n")}}
	c := New(f, "magento")
	up, err := c.IsUp(ContainerMySQL)
	if err != nil || up {
		t.Fatalf("exited container must count as down, got up=%v err=%v", up, err)
	}
}

func TestIsUpRaisesNotDefinedWhenProbeCannotRun(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{cannotStart()}}
	c := New(f, "magento")
	_, err := c.IsUp(ContainerMySQL)
	var notDefined *NotDefinedError
	if !errors.As(err, &notDefined) {
		t.Fatalf("expected NotDefinedError, got %v", err)
	}
}

func TestExecOnDownContainerNeverSpawnsExec(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("")}}
	c := New(f, "magento")
	_, err := c.Exec(ContainerPHP, "bin/magento cache:clean", true)
	var notStarted *NotStartedError
	if !errors.As(err, &notStarted) {
		t.Fatalf("expected NotStartedError, got %v", err)
	}
	if notStarted.Container != ContainerPHP {
		t.Fatalf("error must name the container, got %q", notStarted.Container)
	}
	for _, call := range f.calls {
		if len(call) > 1 && call[1] == "exec" {
			t.Fatalf("exec must not be spawned for a down container: %v", call)
		}
	}
}

func TestExecPHPRunsAsAppUser(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("abc\n"), ok("abc\n"), ok("")}}
	c := New(f, "magento")
	if _, err := c.Exec(ContainerPHP, "bin/magento setup:upgrade", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := f.calls[len(f.calls)-1]
	argv := strings.Join(last, " ")
	if !strings.Contains(argv, "-u www-data:www-data") {
		t.Fatalf("php exec must carry the app user override: %v", last)
	}
	if !strings.Contains(argv, "sh -c bin/magento setup:upgrade") {
		t.Fatalf("command must be wrapped in a shell invocation: %v", last)
	}
}

func TestExecMySQLHasNoUserOverride(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("abc\n"), ok("abc\n"), ok("")}}
	c := New(f, "magento")
	if _, err := c.Exec(ContainerMySQL, "mysqldump shop", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := f.calls[len(f.calls)-1]
	if strings.Contains(strings.Join(last, " "), "-u www-data") {
		t.Fatalf("non-php containers must not get a user override: %v", last)
	}
}

func TestCreateReturnsUnstartedProcessForUpContainer(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("abc\n"), ok("abc\n")}}
	c := New(f, "magento")
	cmd, cancel, err := c.Create(ContainerMySQL, "mysql shop", strings.NewReader("SELECT 1;"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cancel()
	if cmd.Process != nil {
		t.Fatalf("process must not be started")
	}
}

func TestRestartHasNoLivenessPrecheck(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{ok("")}}
	c := New(f, "magento")
	if !c.Restart(ContainerRedis) {
		t.Fatalf("restart must report the verb's own outcome")
	}
	if len(f.calls) != 1 {
		t.Fatalf("restart must issue exactly one subprocess, got %d", len(f.calls))
	}
	first := f.calls[0]
	if first[0] != "docker-compose" || first[1] != "restart" {
		t.Fatalf("expected a bare compose restart, got %v", first)
	}
}

func TestRestartReportsFailure(t *testing.T) {
	f := &fakeRunner{results: []runner.Result{{ExitCode: 1}}}
	c := New(f, "magento")
	if c.Restart(ContainerRedis) {
		t.Fatalf("failed restart must report false")
	}
}
