// Package gateway provides start/stop/restart control of the gateway's
// systemd user unit for clawq.
package gateway

import (
	"fmt"

	"github.com/lvim-tech/clawq/pkg/commands"
	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/execx"
	"github.com/lvim-tech/clawq/pkg/service"
	"github.com/lvim-tech/clawq/pkg/utils"
	"github.com/mitchellh/mapstructure"
)

func init() {
	commands.Register(commands.Command{
		Name:        "gateway",
		Description: "Gateway service control",
		Run:         Run,
	})
}

func Run(ctx commands.LauncherContext) commands.CommandResult {
	cfg := decodeConfig(ctx.Config())
	if !cfg.Enabled {
		return commands.CommandResult{Success: false, Error: fmt.Errorf("gateway module is disabled in config")}
	}
	notifCfg := ctx.Config().GetNotificationConfig()

	for {
		options := []string{
			"← Back",
			"Start",
			"Stop",
			"Restart",
		}

		choice, err := ctx.Show(options, "Gateway")
		if err != nil {
			return commands.CommandResult{Success: false}
		}
		if choice == "← Back" {
			return commands.CommandResult{Success: false, Error: commands.ErrBack}
		}

		verb := service.NormalizeVerb(choice)
		ok, msg := Control(ctx.Config(), verb)
		if ok {
			utils.NotifyWithConfig(&notifCfg, "Gateway", msg)
			return commands.CommandResult{Success: true}
		}
		utils.ShowErrorNotificationWithConfig(&notifCfg, "Gateway", msg)
	}
}

// Control applies a service verb to the configured gateway unit.
func Control(cfg *config.Config, verb string) (bool, string) {
	controller := service.NewController(execx.System{})
	return controller.Control(verb, cfg.GatewayService)
}

// Config holds the gateway action settings.
type Config struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultConfig returns the default gateway action settings.
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
	if err := decoder.Decode(cfg.GetCommandConfig("gateway")); err != nil {
		return DefaultConfig()
	}
	return result
}
