// Package status reduces the gateway CLI's status output to one display line.
// The CLI's output schema is not stable and has changed shape several times,
// so the normalizer is layered: structured invocation forms are tried first,
// each output is probed by independent shape parsers, partial results are
// merged, and a plain-text parser is the last resort. Nothing here returns an
// error; every failure path degrades to a textual explanation.
package status

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvim-tech/clawq/pkg/cliresolver"
	"github.com/lvim-tech/clawq/pkg/execx"
)

// Channel names tracked in the summary line, in render order.
const (
	ChannelTelegram = "telegram"
	ChannelWhatsApp = "whatsapp"
)

// StateUnknown marks a channel whose state no parse strategy resolved.
const StateUnknown = "?"

// Record is the canonical reduction of one status query. It is built
// atomically from a single successful parse and never partially mutated
// afterwards. Channel keys are lower-case canonical names and values are
// never empty (unresolved maps to StateUnknown).
type Record struct {
	GatewayOK bool
	Channels  map[string]string
	Sessions  *int
}

// State returns the normalized state for a channel, StateUnknown if absent.
func (r Record) State(channel string) string {
	if s, ok := r.Channels[channel]; ok && s != "" {
		return s
	}
	return StateUnknown
}

// Line renders the record in fixed order: gateway, telegram, whatsapp,
// then the session count when known.
func (r Record) Line() string {
	gateway := "Gateway DOWN"
	if r.GatewayOK {
		gateway = "Gateway OK"
	}
	parts := []string{
		gateway,
		"TG " + r.State(ChannelTelegram),
		"WA " + r.State(ChannelWhatsApp),
	}
	if r.Sessions != nil {
		parts = append(parts, fmt.Sprintf("Sessions %d", *r.Sessions))
	}
	return strings.Join(parts, " · ")
}

// Options bound the status invocations.
type Options struct {
	// StructuredTimeout bounds each JSON-form attempt. Generous because the
	// CLI can take a moment on a cold start; a timeout falls through.
	StructuredTimeout time.Duration
	// PlainTimeout bounds the plain-text fallback attempt.
	PlainTimeout time.Duration
}

// DefaultOptions returns the stock timeouts.
func DefaultOptions() Options {
	return Options{
		StructuredTimeout: 8 * time.Second,
		PlainTimeout:      4 * time.Second,
	}
}

// structuredForms are the flag spellings for "JSON status" the CLI has
// accepted across versions, tried in order.
var structuredForms = [][]string{
	{"status", "--json"},
	{"status", "--format", "json"},
}

// Summarize queries the resolved CLI and returns a single-line summary.
// When the CLI is not found or every invocation form fails it returns an
// explanatory string instead; it never raises.
func Summarize(runner execx.Runner, cli cliresolver.Resolved, opts Options) string {
	if !cli.Found {
		return fmt.Sprintf("CLI not found (%s). Set 'cli' in ~/.config/clawq/config.toml", cli.ConfiguredAs)
	}

	for _, form := range structuredForms {
		res := execx.RunTimeout(runner, opts.StructuredTimeout, cli.Path, form...)
		if !res.Ok() || strings.TrimSpace(res.Stdout) == "" {
			continue
		}
		record, ok := parseStructured(res.Stdout)
		if !ok {
			continue
		}
		return record.Line()
	}

	// Fallback to plain text.
	res := execx.RunTimeout(runner, opts.PlainTimeout, cli.Path, "status")
	if !res.Ok() {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		if msg == "" {
			if res.TimedOut {
				msg = "timed out"
			} else {
				msg = "unavailable"
			}
		}
		return "Status: " + msg
	}

	return parsePlain(res.Stdout).Line()
}
