// Package term synthesizes the argv needed to run a command visibly inside
// a terminal emulator and keep the window open afterwards. Emulators disagree
// on how a command is passed (--hold + -e, a bare --, a plain -e), so known
// base names dispatch through a closed table with a generic fallback, and a
// {cmd} placeholder in the configured reference is the escape hatch for
// anything unusual.
package term

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lvim-tech/clawq/pkg/execx"
)

// autodetectOrder lists common terminal emulators, tried when neither the
// config nor $TERMINAL names one. x-terminal-emulator respects the Debian
// alternatives system, xterm is the lowest common denominator.
var autodetectOrder = []string{
	"x-terminal-emulator",
	"kitty",
	"alacritty",
	"konsole",
	"gnome-terminal",
	"xterm",
}

// Placeholder marks where the shell command goes in a custom terminal
// reference, e.g. `kitty --hold sh -lc {cmd}`.
const Placeholder = "{cmd}"

// Invocation is a ready-to-launch terminal command line. Argv includes the
// program as its first element.
type Invocation struct {
	Program string
	Argv    []string
}

// ResolveReference picks the terminal command string to use: the configured
// reference, then $TERMINAL, then the first autodetected emulator on PATH.
// Empty means no terminal could be determined.
func ResolveReference(configured string) string {
	if ref := strings.TrimSpace(configured); ref != "" {
		return ref
	}
	if ref := strings.TrimSpace(os.Getenv("TERMINAL")); ref != "" {
		return ref
	}
	for _, name := range autodetectOrder {
		if execx.CommandExists(name) {
			return name
		}
	}
	return ""
}

// BuildInvocation produces the argv that runs shellCmd inside the terminal
// named by ref (a program name, possibly with leading arguments, possibly
// containing Placeholder). It returns nil when no terminal can be determined;
// that is an expected outcome, not a fault.
func BuildInvocation(ref, shellCmd string) *Invocation {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil
	}

	// Custom convention: substitute the command as one quoted shell word and
	// use the rest of the reference verbatim.
	if strings.Contains(ref, Placeholder) {
		argv := SplitWords(strings.ReplaceAll(ref, Placeholder, Quote(shellCmd)))
		if len(argv) == 0 {
			return nil
		}
		return &Invocation{Program: argv[0], Argv: argv}
	}

	argv := SplitWords(ref)
	if len(argv) == 0 {
		return nil
	}

	switch filepath.Base(argv[0]) {
	case "kitty":
		argv = append(argv, "--hold", "sh", "-lc", shellCmd)
	case "konsole":
		// --hold keeps Konsole open after the command exits.
		argv = append(argv, "--hold", "-e", "sh", "-lc", shellCmd)
	case "gnome-terminal":
		// gnome-terminal uses the "--" separator instead of -e.
		argv = append(argv, "--", "bash", "-lc", shellCmd)
	case "xterm":
		argv = append(argv, "-hold", "-e", "sh", "-lc", shellCmd)
	default:
		// Generic terminals typically accept -e.
		argv = append(argv, "-e", "sh", "-lc", shellCmd)
	}

	return &Invocation{Program: argv[0], Argv: argv}
}

// KeepOpen turns a command argv into a shell command that runs it, then
// re-execs an interactive login shell so the window stays usable after the
// command finishes.
func KeepOpen(command []string) string {
	return QuoteJoin(command) + `; echo; exec "${SHELL:-bash}" -l`
}

// Open launches the invocation detached from the caller's process group.
// A launch failure after a valid argv was produced is reported to the caller;
// it is a different condition from "no terminal found" (nil invocation).
func Open(inv *Invocation) error {
	if inv == nil || len(inv.Argv) == 0 {
		return fmt.Errorf("no terminal emulator found")
	}
	if err := execx.StartDetached(inv.Argv[0], inv.Argv[1:]...); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	return nil
}
