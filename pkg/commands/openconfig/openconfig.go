// Package openconfig provides the open-config action for clawq.
package openconfig

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
		Name:        "config",
		Description: "Open config",
		Run:         Run,
	})
}

func Run(ctx commands.LauncherContext) commands.CommandResult {
	cfg := decodeConfig(ctx.Config())
	if !cfg.Enabled {
		return commands.CommandResult{Success: false, Error: fmt.Errorf("config module is disabled in config")}
	}
	notifCfg := ctx.Config().GetNotificationConfig()

	path, err := Open()
	if err != nil {
		utils.ShowErrorNotificationWithConfig(&notifCfg, "Config", err.Error())
		return commands.CommandResult{Success: false}
	}
	utils.NotifyWithConfig(&notifCfg, "Config", path)
	return commands.CommandResult{Success: true}
}

// Open ensures the user config file exists, writing the defaults on first
// use, and hands it to the desktop opener. It returns the config path.
func Open() (string, error) {
	path, err := config.EnsureUserConfig()
	if err != nil {
		return "", err
	}
	return path, opener.OpenFile(path)
}

// Config holds the open-config action settings.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default open-config action settings.
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
	if err := decoder.Decode(cfg.GetCommandConfig("config")); err != nil {
		return DefaultConfig()
	}
	return result
}
