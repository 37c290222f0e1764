// Package gwstatus provides the gateway status action for clawq.
// Concise mode queries the CLI and reports one summary line as a
// notification; verbose mode opens the full status output in a terminal.
package gwstatus

import (
	"fmt"
	"time"

	"github.com/lvim-tech/clawq/pkg/cliresolver"
	"github.com/lvim-tech/clawq/pkg/commands"
	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/execx"
	"github.com/lvim-tech/clawq/pkg/status"
	"github.com/lvim-tech/clawq/pkg/term"
	"github.com/lvim-tech/clawq/pkg/utils"
	"github.com/mitchellh/mapstructure"
)

func init() {
	commands.Register(commands.Command{
		Name:        "status",
		Description: "Gateway status",
		Run:         Run,
	})
}

// probeTimeout bounds the cheap "does status --all work" check before
// opening a terminal. Kept short; on timeout we just use plain status.
const probeTimeout = 1500 * time.Millisecond

func Run(ctx commands.LauncherContext) commands.CommandResult {
	cfg := decodeConfig(ctx.Config())
	if !cfg.Enabled {
		return commands.CommandResult{Success: false, Error: fmt.Errorf("status module is disabled in config")}
	}
	notifCfg := ctx.Config().GetNotificationConfig()

	for {
		options := []string{
			"← Back",
			"Status (concise)",
			"Status (verbose)",
		}

		choice, err := ctx.Show(options, "Claw Status")
		if err != nil {
			return commands.CommandResult{Success: false}
		}
		if choice == "← Back" {
			return commands.CommandResult{Success: false, Error: commands.ErrBack}
		}

		switch choice {
		case "Status (concise)":
			utils.NotifyWithConfig(&notifCfg, "Claw Status", Summary(ctx.Config()))
			return commands.CommandResult{Success: true}
		case "Status (verbose)":
			if err := OpenVerbose(ctx.Config()); err != nil {
				utils.ShowErrorNotificationWithConfig(&notifCfg, "Claw Status", err.Error())
				continue
			}
			return commands.CommandResult{Success: true}
		default:
			utils.ShowErrorNotificationWithConfig(&notifCfg, "Claw Status", fmt.Sprintf("Unknown choice: %s", choice))
		}
	}
}

// Summary resolves the CLI and reduces its status output to one line.
func Summary(cfg *config.Config) string {
	resolved := cliresolver.Resolve(cfg.CLI, cfg.CLIAliases)
	return status.Summarize(execx.System{}, resolved, optionsFrom(decodeConfig(cfg)))
}

// OpenVerbose opens the CLI's full status output in a terminal, preferring
// `status --all` when the installed build supports it.
func OpenVerbose(cfg *config.Config) error {
	resolved := cliresolver.Resolve(cfg.CLI, cfg.CLIAliases)
	if !resolved.Found {
		return fmt.Errorf("CLI not found (%s). Set 'cli' in %s", resolved.ConfiguredAs, config.GetUserConfigPath())
	}

	command := []string{resolved.Path, "status"}
	if probe := execx.RunTimeout(execx.System{}, probeTimeout, resolved.Path, "status", "--all"); probe.Ok() {
		command = append(command, "--all")
	}

	inv := term.BuildInvocation(term.ResolveReference(cfg.Terminal), term.KeepOpen(command))
	if inv == nil {
		return fmt.Errorf("no terminal emulator found")
	}
	return term.Open(inv)
}

// Config holds the status action settings.
type Config struct {
	Enabled           bool `mapstructure:"enabled"`
	StructuredTimeout int  `mapstructure:"structured_timeout_seconds"`
	PlainTimeout      int  `mapstructure:"plain_timeout_seconds"`
}

// DefaultConfig returns the default status action settings.
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
	if err := decoder.Decode(cfg.GetCommandConfig("status")); err != nil {
		return DefaultConfig()
	}
	return result
}

func optionsFrom(cfg Config) status.Options {
	opts := status.DefaultOptions()
	if cfg.StructuredTimeout > 0 {
		opts.StructuredTimeout = time.Duration(cfg.StructuredTimeout) * time.Second
	}
	if cfg.PlainTimeout > 0 {
		opts.PlainTimeout = time.Duration(cfg.PlainTimeout) * time.Second
	}
	return opts
}
