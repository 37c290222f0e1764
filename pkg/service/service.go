// Package service controls the gateway's systemd user units and builds the
// argv for following their logs. systemctl and journalctl are black boxes:
// success is exit code zero, and their absence or failure degrades to a
// message rather than an error that could take the launcher down.
package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/lvim-tech/clawq/pkg/execx"
)

// Verbs accepted by Control. Anything else is coerced to restart, the safest
// recovery action for a misrouted request.
const (
	VerbStart   = "start"
	VerbStop    = "stop"
	VerbRestart = "restart"
)

// controlTimeout bounds one systemctl call. Unit (re)starts can legitimately
// take a few seconds.
const controlTimeout = 8 * time.Second

// Controller runs service control verbs against systemd user units.
type Controller struct {
	runner execx.Runner
}

// NewController returns a Controller using the given runner.
func NewController(runner execx.Runner) *Controller {
	return &Controller{runner: runner}
}

// NormalizeVerb maps arbitrary input onto a supported verb.
func NormalizeVerb(verb string) string {
	switch strings.ToLower(strings.TrimSpace(verb)) {
	case VerbStart:
		return VerbStart
	case VerbStop:
		return VerbStop
	default:
		return VerbRestart
	}
}

// Control runs `systemctl --user <verb> <unit>` and reports the outcome as a
// display message. An empty unit is a configuration error, reported without
// invoking anything.
func (c *Controller) Control(verb, unit string) (bool, string) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return false, "No unit configured"
	}
	verb = NormalizeVerb(verb)

	res := execx.RunTimeout(c.runner, controlTimeout, "systemctl", "--user", verb, unit)
	if res.Ok() {
		return true, fmt.Sprintf("%s %s: OK", verb, unit)
	}

	msg := strings.TrimSpace(res.Stderr)
	if msg == "" {
		msg = strings.TrimSpace(res.Stdout)
	}
	if msg == "" {
		if res.TimedOut {
			msg = "systemctl timed out"
		} else {
			msg = fmt.Sprintf("systemctl rc=%d", res.ExitCode)
		}
	}
	return false, fmt.Sprintf("%s %s: %s", verb, unit, msg)
}

// JournalFollowArgs returns the argv that follows a user unit's logs.
func JournalFollowArgs(unit string) []string {
	return []string{"journalctl", "--user", "-u", unit, "-f"}
}
