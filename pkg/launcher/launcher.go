// Package launcher provides the menu front-end for clawq actions.
// It abstracts over dmenu-style menu programs (rofi, dmenu, fzf, bemenu,
// fuzzel) behind one interface: options in on stdin, the chosen line out on
// stdout, ESC/abort reported as ErrCancelled.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/execx"
)

// ErrCancelled is returned when the user dismisses the menu (ESC, exit 1).
var ErrCancelled = errors.New("cancelled by user")

// IsCancelled reports whether err is a menu dismissal.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}

// Launcher shows a menu and returns the selected option.
type Launcher interface {
	Name() string
	Show(options []string, prompt string) (string, error)
}

// menuProgram describes one supported menu program: the binary name plus how
// a prompt is passed and whether stderr must stay attached (fzf draws its UI
// there).
type menuProgram struct {
	name        string
	promptArgs  func(prompt string) []string
	passthrough bool
}

// programs in autodetect priority order.
var programs = []menuProgram{
	{name: "rofi", promptArgs: func(p string) []string { return []string{"-p", p, "-dmenu"} }},
	{name: "dmenu", promptArgs: func(p string) []string { return []string{"-p", p} }},
	{name: "fzf", promptArgs: func(p string) []string { return []string{"--prompt", p + "> "} }, passthrough: true},
	{name: "bemenu", promptArgs: func(p string) []string { return []string{"-p", p} }},
	{name: "fuzzel", promptArgs: func(p string) []string { return []string{"--dmenu", "-p", p} }},
}

type menuLauncher struct {
	program menuProgram
	args    []string
}

func (m *menuLauncher) Name() string {
	return m.program.name
}

func (m *menuLauncher) Show(options []string, prompt string) (string, error) {
	args := append([]string{}, m.args...)
	args = append(args, m.program.promptArgs(prompt)...)

	cmd := exec.Command(m.program.name, args...)
	cmd.Stdin = strings.NewReader(strings.Join(options, "\n"))
	if m.program.passthrough {
		cmd.Stderr = os.Stderr
	}

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		// dmenu-style programs exit 1 on ESC, fzf exits 130 on Ctrl-C.
		if errors.As(err, &exitErr) && (exitErr.ExitCode() == 1 || exitErr.ExitCode() == 130) {
			return "", ErrCancelled
		}
		return "", err
	}

	choice := strings.TrimSpace(string(output))
	if choice == "" {
		return "", ErrCancelled
	}

	return choice, nil
}

// New returns the launcher with the given name, configured with the user's
// extra args. Unknown names are an error so typos surface immediately.
func New(name string, cfg *config.Config) (Launcher, error) {
	for _, program := range programs {
		if program.name == name {
			return &menuLauncher{program: program, args: cfg.GetLauncherArgs(name)}, nil
		}
	}
	return nil, fmt.Errorf("unknown launcher: %s (available: %s)", name, strings.Join(Names(), ", "))
}

// Detect returns the first installed launcher in priority order, or an error
// when none is available.
func Detect(cfg *config.Config) (Launcher, error) {
	for _, program := range programs {
		if execx.CommandExists(program.name) {
			return &menuLauncher{program: program, args: cfg.GetLauncherArgs(program.name)}, nil
		}
	}
	return nil, fmt.Errorf("no launcher available - please install rofi, dmenu, fzf, bemenu, or fuzzel")
}

// Names lists the supported launcher names in priority order.
func Names() []string {
	names := make([]string, len(programs))
	for i, program := range programs {
		names[i] = program.name
	}
	return names
}
