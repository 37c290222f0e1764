package main

import (
	"fmt"

	"github.com/lvim-tech/clawq/pkg/commands/dashboard"
	"github.com/lvim-tech/clawq/pkg/commands/gateway"
	"github.com/lvim-tech/clawq/pkg/commands/gwstatus"
	"github.com/lvim-tech/clawq/pkg/commands/logs"
	"github.com/lvim-tech/clawq/pkg/commands/openconfig"
	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/spf13/cobra"
)

var statusVerbose bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a one-line gateway status summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if statusVerbose {
			return gwstatus.OpenVerbose(cfg)
		}
		fmt.Println(gwstatus.Summary(cfg))
		return nil
	},
}

var gatewayCmd = &cobra.Command{
	Use:       "gateway <start|stop|restart>",
	Short:     "Control the gateway service unit",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"start", "stop", "restart"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		ok, msg := gateway.Control(cfg, args[0])
		fmt.Println(msg)
		if !ok {
			return fmt.Errorf("gateway %s failed", args[0])
		}
		return nil
	},
}

var logsCmd = &cobra.Command{
	Use:       "logs [gateway|runner]",
	Short:     "Follow service logs in a terminal",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"gateway", "runner"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		unit := cfg.GatewayService
		if len(args) == 1 && args[0] == "runner" {
			unit = cfg.RunnerService
		}
		return logs.Follow(cfg, unit)
	},
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Open the gateway dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return dashboard.Open(cfg)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Open the user config file, creating it first if needed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := openconfig.Open()
		if err != nil {
			return err
		}
		fmt.Printf("Opened %s\n", path)
		return nil
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to ~/.config/clawq/config.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitUserConfig(); err != nil {
			return err
		}
		fmt.Printf("Config initialized at: %s\n", config.GetUserConfigPath())
		fmt.Println("\nEdit the config file to point 'cli' at your gateway binary.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clawq version %s\n", version)
	},
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false,
		"open full status output in a terminal instead")
}
