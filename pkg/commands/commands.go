// Package commands provides the action system for clawq.
// Action packages register themselves on init and are discovered by the menu
// front-end; each action decodes its own config section and reports results
// through CommandResult so the menu loop can decide whether to stay open.
package commands

import (
	"errors"

	"github.com/lvim-tech/clawq/pkg/config"
)

// ErrBack signals that the user chose to return to the previous menu.
var ErrBack = errors.New("back")

// CommandResult represents the result of an action execution.
type CommandResult struct {
	Success bool
	Error   error
}

// Command is one quick-launch action.
type Command struct {
	Name        string
	Description string
	Run         func(LauncherContext) CommandResult
}

// LauncherContext is what an action gets to interact with the user.
type LauncherContext interface {
	Show(options []string, prompt string) (string, error)
	Config() *config.Config
}

// registry keeps registration order so the menu is stable.
var registry []Command

// Register adds an action to the registry.
func Register(cmd Command) {
	registry = append(registry, cmd)
}

// GetAll returns all registered actions in registration order.
func GetAll() []Command {
	return append([]Command(nil), registry...)
}
