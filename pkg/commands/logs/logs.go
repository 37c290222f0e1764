// Package logs provides the log-following action for clawq: it opens
// journalctl in a terminal for the gateway unit or for clawq's own unit.
package logs

import (
	"fmt"

	"github.com/lvim-tech/clawq/pkg/commands"
	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/service"
	"github.com/lvim-tech/clawq/pkg/term"
	"github.com/lvim-tech/clawq/pkg/utils"
	"github.com/mitchellh/mapstructure"
)

func init() {
	commands.Register(commands.Command{
		Name:        "logs",
		Description: "Follow service logs",
		Run:         Run,
	})
}

func Run(ctx commands.LauncherContext) commands.CommandResult {
	cfg := decodeConfig(ctx.Config())
	if !cfg.Enabled {
		return commands.CommandResult{Success: false, Error: fmt.Errorf("logs module is disabled in config")}
	}
	notifCfg := ctx.Config().GetNotificationConfig()

	for {
		options := []string{
			"← Back",
			"Gateway logs",
			"Runner logs",
		}

		choice, err := ctx.Show(options, "Logs")
		if err != nil {
			return commands.CommandResult{Success: false}
		}
		if choice == "← Back" {
			return commands.CommandResult{Success: false, Error: commands.ErrBack}
		}

		var unit string
		switch choice {
		case "Gateway logs":
			unit = ctx.Config().GatewayService
		case "Runner logs":
			unit = ctx.Config().RunnerService
		default:
			utils.ShowErrorNotificationWithConfig(&notifCfg, "Logs", fmt.Sprintf("Unknown choice: %s", choice))
			continue
		}

		if err := Follow(ctx.Config(), unit); err != nil {
			utils.ShowErrorNotificationWithConfig(&notifCfg, "Logs", err.Error())
			continue
		}
		return commands.CommandResult{Success: true}
	}
}

// Follow opens a terminal following the given unit's journal.
func Follow(cfg *config.Config, unit string) error {
	if unit == "" {
		return fmt.Errorf("no unit configured")
	}
	inv := term.BuildInvocation(term.ResolveReference(cfg.Terminal), term.KeepOpen(service.JournalFollowArgs(unit)))
	if inv == nil {
		return fmt.Errorf("no terminal emulator found")
	}
	return term.Open(inv)
}

// Config holds the logs action settings.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default logs action settings.
func DefaultConfig() Config {
	return Config{Enabled: true}
}

func decodeConfig(cfg *config.Config) Config {
	result := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &result,
	})
	if err != nil {
		return DefaultConfig()
	}
	if err := decoder.Decode(cfg.GetCommandConfig("logs")); err != nil {
		return DefaultConfig()
	}
	return result
}
