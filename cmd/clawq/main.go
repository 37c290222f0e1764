package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lvim-tech/clawq/pkg/commands"
	_ "github.com/lvim-tech/clawq/pkg/commands/dashboard"
	_ "github.com/lvim-tech/clawq/pkg/commands/gateway"
	_ "github.com/lvim-tech/clawq/pkg/commands/gwstatus"
	_ "github.com/lvim-tech/clawq/pkg/commands/logs"
	_ "github.com/lvim-tech/clawq/pkg/commands/openconfig"
	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/launcher"
	"github.com/lvim-tech/clawq/pkg/utils"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var launcherFlag string

var rootCmd = &cobra.Command{
	Use:   "clawq",
	Short: "Quick-launch actions for the claw gateway",
	Long: `clawq exposes quick-launch actions for the claw gateway CLI:
open the dashboard, check gateway health, control the gateway service and
follow its logs - through rofi, dmenu, fzf, bemenu, or fuzzel.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return runMenu(cfg)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&launcherFlag, "launcher", "l", "",
		"menu launcher to use (rofi, dmenu, fzf, bemenu, fuzzel)")
	rootCmd.AddCommand(statusCmd, gatewayCmd, logsCmd, dashboardCmd, configCmd, initCmd, versionCmd)
}

// menuContext adapts a launcher into the LauncherContext actions expect.
type menuContext struct {
	launcher launcher.Launcher
	cfg      *config.Config
}

func (c *menuContext) Show(options []string, prompt string) (string, error) {
	return c.launcher.Show(options, prompt)
}

func (c *menuContext) Config() *config.Config {
	return c.cfg
}

func pickLauncher(cfg *config.Config) (launcher.Launcher, error) {
	name := launcherFlag
	if name == "" {
		name = cfg.DefaultLauncher
	}
	if name != "" {
		if l, err := launcher.New(name, cfg); err == nil {
			return l, nil
		} else if launcherFlag != "" {
			// An explicit flag with a bad name should fail loudly; a bad
			// config value falls back to detection.
			return nil, err
		}
	}
	return launcher.Detect(cfg)
}

func runMenu(cfg *config.Config) error {
	l, err := pickLauncher(cfg)
	if err != nil {
		return err
	}
	ctx := &menuContext{launcher: l, cfg: cfg}
	notifCfg := cfg.GetNotificationConfig()

	registered := commands.GetAll()
	if len(registered) == 0 {
		return fmt.Errorf("no actions registered")
	}

	for {
		var options []string
		optionToCommand := make(map[string]commands.Command)
		for _, cmd := range registered {
			if !isCommandEnabled(cfg, cmd.Name) {
				continue
			}
			options = append(options, cmd.Description)
			optionToCommand[cmd.Description] = cmd
		}
		if len(options) == 0 {
			return fmt.Errorf("no enabled actions")
		}

		choice, err := ctx.Show(options, "clawq")
		if launcher.IsCancelled(err) {
			// ESC on the top menu just closes clawq.
			return nil
		}
		if err != nil {
			return err
		}

		cmd, ok := optionToCommand[choice]
		if !ok {
			utils.ShowErrorNotificationWithConfig(&notifCfg, "clawq", fmt.Sprintf("Unknown action: %s", choice))
			continue
		}

		result := cmd.Run(ctx)
		if result.Success {
			return nil
		}
		if result.Error != nil && !errors.Is(result.Error, commands.ErrBack) {
			utils.ShowErrorNotificationWithConfig(&notifCfg, "clawq", result.Error.Error())
		}
	}
}

func isCommandEnabled(cfg *config.Config, name string) bool {
	section := cfg.GetCommandConfig(name)
	if section == nil {
		return true
	}
	if enabled, ok := section["enabled"].(bool); ok {
		return enabled
	}
	return true
}
