// Package dashboard provides the open-dashboard action for clawq.
package dashboard

import (
	"fmt"

	"github.com/lvim-tech/clawq/pkg/commands"
	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/opener"
	"github.com/lvim-tech/clawq/pkg/utils"
	"github.com/mitchellh/mapstructure"
)

func init() {
	commands.Register(commands.Command{
		Name:        "dashboard",
		Description: "Open dashboard",
		Run:         Run,
	})
}

func Run(ctx commands.LauncherContext) commands.CommandResult {
	cfg := decodeConfig(ctx.Config())
	if !cfg.Enabled {
		return commands.CommandResult{Success: false, Error: fmt.Errorf("dashboard module is disabled in config")}
	}

	if err := Open(ctx.Config()); err != nil {
		notifCfg := ctx.Config().GetNotificationConfig()
		utils.ShowErrorNotificationWithConfig(&notifCfg, "Dashboard", err.Error())
		return commands.CommandResult{Success: false}
	}
	return commands.CommandResult{Success: true}
}

// Open opens the configured dashboard URL with the desktop opener chain.
func Open(cfg *config.Config) error {
	if cfg.DashboardURL == "" {
		return fmt.Errorf("no dashboard URL configured")
	}
	return opener.OpenURL(cfg.DashboardURL)
}

// Config holds the dashboard action settings.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default dashboard action settings.
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
	if err := decoder.Decode(cfg.GetCommandConfig("dashboard")); err != nil {
		return DefaultConfig()
	}
	return result
}
