package status

import (
	"context"
	"strings"
	"testing"

	"github.com/lvim-tech/clawq/pkg/cliresolver"
	"github.com/lvim-tech/clawq/pkg/execx"
)

// fakeRunner maps a joined command line to a canned result and records the
// calls it saw.
type fakeRunner struct {
	results map[string]execx.Result
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) execx.Result {
	cmd := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, cmd)
	if res, ok := f.results[cmd]; ok {
		return res
	}
	return execx.Result{ExitCode: 1, Stderr: "unknown command"}
}

var foundCLI = cliresolver.Resolved{Path: "/opt/claw/clawdbot", Found: true, ConfiguredAs: "clawdbot"}

func TestSummarizeNotFound(t *testing.T) {
	runner := &fakeRunner{}
	cli := cliresolver.Resolved{Path: "clawdbot", Found: false, ConfiguredAs: "clawdbot"}

	got := Summarize(runner, cli, DefaultOptions())
	if !strings.Contains(got, "CLI not found (clawdbot)") {
		t.Fatalf("got %q, want a message naming the configured reference", got)
	}
	if len(runner.calls) != 0 {
		t.Fatalf("must not invoke anything when the CLI is missing, ran: %v", runner.calls)
	}
}

func TestSummarizeStructured(t *testing.T) {
	out := `{"gateway":{"state":"ok"},"channels":[{"channel":"telegram","state":"up"},{"channel":"whatsapp","state":"down"}],"sessions":{"active":3}}`
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status --json": {Stdout: out},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	want := "Gateway OK · TG OK · WA DOWN · Sessions 3"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	out := `{"gateway":{"reachable":true},"channelSummary":["Telegram: connected","WhatsApp: unlinked"]}`
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status --json": {Stdout: out},
	}}

	first := Summarize(runner, foundCLI, DefaultOptions())
	second := Summarize(runner, foundCLI, DefaultOptions())
	if first != second {
		t.Fatalf("summaries differ for identical output: %q vs %q", first, second)
	}
	if first != "Gateway OK · TG OK · WA DOWN" {
		t.Fatalf("got %q", first)
	}
}

func TestSummarizeSecondFormFallback(t *testing.T) {
	out := `{"gateway":{"state":"running"},"channels":[{"name":"telegram","status":"connected"}]}`
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status --json":        {ExitCode: 2, Stderr: "unknown flag: --json"},
		"/opt/claw/clawdbot status --format json": {Stdout: out},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	want := "Gateway OK · TG OK · WA ?"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSummarizeUnparseableJSONFallsThrough(t *testing.T) {
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status --json":        {Stdout: "not json at all"},
		"/opt/claw/clawdbot status --format json": {Stdout: "[1,2,3]"},
		"/opt/claw/clawdbot status":               {Stdout: "Gateway: OK\nTelegram: UP\nWhatsApp: DOWN\nSessions: 2\n"},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	want := "Gateway OK · TG OK · WA DOWN · Sessions 2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSummarizePlainTextFallback(t *testing.T) {
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status": {Stdout: "Gateway: OK\nTelegram: UP\nWhatsApp: DOWN\nSessions: 2\n"},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	want := "Gateway OK · TG OK · WA DOWN · Sessions 2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSummarizeTableFallback(t *testing.T) {
	out := "Gateway: up\n" +
		"┌──────────┬────────────┬──────┐\n" +
		"│ Telegram │ @clawbot   │ OK   │\n" +
		"│ WhatsApp │ unlinked   │ DOWN │\n" +
		"└──────────┴────────────┴──────┘\n"
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status": {Stdout: out},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	want := "Gateway OK · TG OK · WA DOWN"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSummarizeAllFormsFail(t *testing.T) {
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status": {ExitCode: 3, Stderr: "gateway unreachable"},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	if got != "Status: gateway unreachable" {
		t.Fatalf("got %q", got)
	}
}

func TestSummarizeTimeoutIsRecognizable(t *testing.T) {
	runner := &fakeRunner{results: map[string]execx.Result{
		"/opt/claw/clawdbot status --json":        {TimedOut: true, ExitCode: 124},
		"/opt/claw/clawdbot status --format json": {TimedOut: true, ExitCode: 124},
		"/opt/claw/clawdbot status":               {TimedOut: true, ExitCode: 124},
	}}

	got := Summarize(runner, foundCLI, DefaultOptions())
	if got != "Status: timed out" {
		t.Fatalf("got %q, want a timeout-specific message", got)
	}
}
