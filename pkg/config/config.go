// Package config provides configuration management for clawq.
// It handles loading, merging, and accessing configuration from the embedded
// defaults and the user config file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfigData string

// Config is the fully merged configuration. Core components receive the
// values they need by value and never re-read configuration themselves.
type Config struct {
	DashboardURL    string             `toml:"dashboard_url"`
	CLI             string             `toml:"cli"`
	CLIAliases      []string           `toml:"cli_aliases"`
	GatewayService  string             `toml:"gateway_service"`
	RunnerService   string             `toml:"runner_service"`
	Terminal        string             `toml:"terminal"`
	DefaultLauncher string             `toml:"default_launcher"`
	Launchers       LauncherConfig     `toml:"launchers"`
	Notifications   NotificationConfig `toml:"notifications"`

	// Commands holds the per-action sections as raw tables; each action
	// package decodes its own section with mapstructure.
	Commands map[string]map[string]any `toml:"commands"`
}

// NotificationConfig controls how results are reported to the user.
type NotificationConfig struct {
	Enabled        bool   `toml:"enabled"`
	Tool           string `toml:"tool"` // "auto", "dunstify", "notify-send"
	Timeout        int    `toml:"timeout"`
	Urgency        string `toml:"urgency"`
	ShowInTerminal bool   `toml:"show_in_terminal"`
}

// ConfigFile mirrors Config with pointer fields so unset user values do not
// clobber the defaults during the merge.
type ConfigFile struct {
	DashboardURL    *string                   `toml:"dashboard_url"`
	CLI             *string                   `toml:"cli"`
	CLIAliases      []string                  `toml:"cli_aliases"`
	GatewayService  *string                   `toml:"gateway_service"`
	RunnerService   *string                   `toml:"runner_service"`
	Terminal        *string                   `toml:"terminal"`
	DefaultLauncher *string                   `toml:"default_launcher"`
	Launchers       LauncherConfig            `toml:"launchers"`
	Notifications   NotificationConfigFile    `toml:"notifications"`
	Commands        map[string]map[string]any `toml:"commands"`
}

// NotificationConfigFile mirrors NotificationConfig for reading from TOML.
type NotificationConfigFile struct {
	Enabled        *bool   `toml:"enabled"`
	Tool           *string `toml:"tool"`
	Timeout        *int    `toml:"timeout"`
	Urgency        *string `toml:"urgency"`
	ShowInTerminal *bool   `toml:"show_in_terminal"`
}

var globalConfig *Config

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "clawq", "config.toml")
}

// Load loads the config, merging user overrides onto the embedded defaults.
// A broken user file is reported to stderr and the defaults are used; config
// problems never stop the launcher.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	defaultCfg, err := loadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	userConfigPath := GetUserConfigPath()
	if _, err := os.Stat(userConfigPath); err == nil {
		userCfg, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load user config: %v\n", err)
			fmt.Fprintf(os.Stderr, "Using default configuration\n")
			globalConfig = defaultCfg
			return globalConfig, nil
		}
		globalConfig = mergeConfigs(defaultCfg, userCfg)
		return globalConfig, nil
	}

	globalConfig = defaultCfg
	return globalConfig, nil
}

func loadDefaultConfig() (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(defaultConfigData, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadConfigFromFile(path string) (*ConfigFile, error) {
	var cfg ConfigFile
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays the user config onto the defaults.
func mergeConfigs(defaultCfg *Config, userCfg *ConfigFile) *Config {
	merged := *defaultCfg

	if userCfg.DashboardURL != nil && *userCfg.DashboardURL != "" {
		merged.DashboardURL = *userCfg.DashboardURL
	}
	if userCfg.CLI != nil && *userCfg.CLI != "" {
		merged.CLI = *userCfg.CLI
	}
	if len(userCfg.CLIAliases) > 0 {
		merged.CLIAliases = userCfg.CLIAliases
	}
	if userCfg.GatewayService != nil && *userCfg.GatewayService != "" {
		merged.GatewayService = *userCfg.GatewayService
	}
	if userCfg.RunnerService != nil && *userCfg.RunnerService != "" {
		merged.RunnerService = *userCfg.RunnerService
	}
	if userCfg.Terminal != nil {
		merged.Terminal = *userCfg.Terminal
	}
	if userCfg.DefaultLauncher != nil && *userCfg.DefaultLauncher != "" {
		merged.DefaultLauncher = *userCfg.DefaultLauncher
	}

	mergeLauncherConfigs(&merged.Launchers, &userCfg.Launchers)
	mergeNotificationConfig(&merged.Notifications, &userCfg.Notifications)

	// Command sections replace as a whole; each section is decoded onto its
	// package defaults, so partial tables are still safe.
	if len(userCfg.Commands) > 0 {
		if merged.Commands == nil {
			merged.Commands = make(map[string]map[string]any)
		}
		for name, section := range userCfg.Commands {
			merged.Commands[name] = section
		}
	}

	return &merged
}

func mergeNotificationConfig(merged *NotificationConfig, user *NotificationConfigFile) {
	if user.Enabled != nil {
		merged.Enabled = *user.Enabled
	}
	if user.Tool != nil && *user.Tool != "" {
		merged.Tool = *user.Tool
	}
	if user.Timeout != nil {
		merged.Timeout = *user.Timeout
	}
	if user.Urgency != nil && *user.Urgency != "" {
		merged.Urgency = *user.Urgency
	}
	if user.ShowInTerminal != nil {
		merged.ShowInTerminal = *user.ShowInTerminal
	}
}

// GetNotificationConfig returns the notification settings.
func (c *Config) GetNotificationConfig() NotificationConfig {
	return c.Notifications
}

// GetCommandConfig returns the raw config section for a command, which may
// be nil when the user configured nothing for it.
func (c *Config) GetCommandConfig(name string) map[string]any {
	return c.Commands[name]
}

// InitUserConfig writes the default config into the user config directory.
func InitUserConfig() error {
	userConfigPath := GetUserConfigPath()
	userConfigDir := filepath.Dir(userConfigPath)

	if _, err := os.Stat(userConfigPath); err == nil {
		return fmt.Errorf("config already exists: %s", userConfigPath)
	}

	if err := os.MkdirAll(userConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(userConfigPath, []byte(defaultConfigData), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EnsureUserConfig returns the user config path, writing the defaults first
// when no config file exists yet. An existing file is left untouched.
func EnsureUserConfig() (string, error) {
	userConfigPath := GetUserConfigPath()
	if _, err := os.Stat(userConfigPath); err == nil {
		return userConfigPath, nil
	}
	if err := InitUserConfig(); err != nil {
		return "", err
	}
	return userConfigPath, nil
}
