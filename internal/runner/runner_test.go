package runner

import (
	"strings"
	"testing"
	"time"
)

func TestRunCapturesStdout(t *testing.T) {
	r := New()
	res := r.Run([]string{"sh", "-c", "echo hello"}, Options{Capture: true})
	if !res.Succeeded() {
		t.Fatalf("expected success, got code %d err %v", res.ExitCode, res.Err)
	}
	if res.Output() != "hello" {
		t.Fatalf("unexpected stdout %q", res.Stdout)
	}
}

func TestRunCapturesStderrAndExitCode(t *testing.T) {
	r := New()
	res := r.Run([]string{"sh", "-c", "echo oops >&2; exit 3"}, Options{Capture: true})
	if res.Succeeded() {
		t.Fatalf("expected failure")
	}
	if res.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "oops") {
		t.Fatalf("stderr not captured: %q", res.Stderr)
	}
}

func TestRunAppendsEnv(t *testing.T) {
	r := New()
	res := r.Run([]string{"sh", "-c", "echo $SETUP_MAGENTO_TEST"}, Options{
		Capture: true,
		Env:     []string{"SETUP_MAGENTO_TEST=injected"},
	})
	if res.Output() != "injected" {
		t.Fatalf("environment not injected, stdout %q", res.Stdout)
	}
}

func TestRunReportsSoftTimeout(t *testing.T) {
	r := New()
	res := r.Run([]string{"sleep", "5"}, Options{Timeout: 100 * time.Millisecond, Capture: true})
	if !res.TimedOut() {
		t.Fatalf("expected soft timeout, got code %d err %v", res.ExitCode, res.Err)
	}
	if res.Err != nil {
		t.Fatalf("soft timeout must not carry an error, got %v", res.Err)
	}
}

func TestRunReportsCouldNotStart(t *testing.T) {
	r := New()
	res := r.Run([]string{"definitely-not-a-binary-on-this-host"}, Options{Capture: true})
	if !res.CouldNotStart() {
		t.Fatalf("expected could-not-start, got code %d", res.ExitCode)
	}
	if res.Err == nil {
		t.Fatalf("expected spawn error to be reported")
	}
}

func TestCreateReturnsUnstartedProcess(t *testing.T) {
	r := New()
	cmd, cancel := r.Create([]string{"sh", "-c", "cat"}, Options{Stdin: strings.NewReader("piped")})
	defer cancel()
	if cmd.Process != nil {
		t.Fatalf("process must not be started yet")
	}
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if string(out) != "piped" {
		t.Fatalf("stdin not wired, got %q", out)
	}
}
