package service

import (
	"context"
	"strings"
	"testing"

	"github.com/lvim-tech/clawq/pkg/execx"
)

type fakeRunner struct {
	result execx.Result
	calls  []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) execx.Result {
	f.calls = append(f.calls, strings.Join(append([]string{name}, args...), " "))
	return f.result
}

func TestControlSuccess(t *testing.T) {
	runner := &fakeRunner{}
	ctrl := NewController(runner)

	ok, msg := ctrl.Control("restart", "clawdbot-gateway.service")
	if !ok {
		t.Fatalf("expected success, got %q", msg)
	}
	if msg != "restart clawdbot-gateway.service: OK" {
		t.Fatalf("msg = %q", msg)
	}
	if len(runner.calls) != 1 || runner.calls[0] != "systemctl --user restart clawdbot-gateway.service" {
		t.Fatalf("calls = %v", runner.calls)
	}
}

func TestControlEmptyUnit(t *testing.T) {
	runner := &fakeRunner{}
	ctrl := NewController(runner)

	ok, msg := ctrl.Control("start", "  ")
	if ok || msg != "No unit configured" {
		t.Fatalf("got ok=%v msg=%q", ok, msg)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("must not invoke systemctl without a unit, ran: %v", runner.calls)
	}
}

func TestControlFailureMessage(t *testing.T) {
	runner := &fakeRunner{result: execx.Result{ExitCode: 5, Stderr: "Unit not found.\n"}}
	ctrl := NewController(runner)

	ok, msg := ctrl.Control("stop", "claw.service")
	if ok {
		t.Fatal("expected failure")
	}
	if msg != "stop claw.service: Unit not found." {
		t.Fatalf("msg = %q", msg)
	}
}

func TestControlFailureWithoutOutput(t *testing.T) {
	runner := &fakeRunner{result: execx.Result{ExitCode: 4}}
	ctrl := NewController(runner)

	_, msg := ctrl.Control("stop", "claw.service")
	if !strings.Contains(msg, "systemctl rc=4") {
		t.Fatalf("msg = %q, want the exit code named", msg)
	}
}

func TestControlTimeoutMessage(t *testing.T) {
	runner := &fakeRunner{result: execx.Result{TimedOut: true, ExitCode: 124}}
	ctrl := NewController(runner)

	_, msg := ctrl.Control("start", "claw.service")
	if !strings.Contains(msg, "timed out") {
		t.Fatalf("msg = %q, want a timeout-specific message", msg)
	}
}

func TestNormalizeVerb(t *testing.T) {
	cases := map[string]string{
		"start":    VerbStart,
		"Stop":     VerbStop,
		" restart": VerbRestart,
		"reload":   VerbRestart,
		"":         VerbRestart,
	}
	for in, want := range cases {
		if got := NormalizeVerb(in); got != want {
			t.Errorf("NormalizeVerb(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJournalFollowArgs(t *testing.T) {
	got := strings.Join(JournalFollowArgs("claw.service"), " ")
	if got != "journalctl --user -u claw.service -f" {
		t.Fatalf("got %q", got)
	}
}
