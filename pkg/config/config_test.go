package config

import (
	"os"
	"path/filepath"
	"testing"
)

func loadIsolated(t *testing.T, userConfig string) *Config {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	globalConfig = nil
	t.Cleanup(func() { globalConfig = nil })

	if userConfig != "" {
		dir := filepath.Join(home, ".config", "clawq")
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(userConfig), 0644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadIsolated(t, "")

	if cfg.CLI != "clawdbot" {
		t.Errorf("CLI = %q", cfg.CLI)
	}
	if len(cfg.CLIAliases) != 3 || cfg.CLIAliases[0] != "clawdbot" {
		t.Errorf("CLIAliases = %v", cfg.CLIAliases)
	}
	if cfg.DashboardURL == "" || cfg.GatewayService == "" {
		t.Errorf("incomplete defaults: %+v", cfg)
	}
	if !cfg.Notifications.Enabled {
		t.Error("notifications should default to enabled")
	}
}

func TestLoadUserOverridesMergeOntoDefaults(t *testing.T) {
	cfg := loadIsolated(t, `
cli = "/opt/claw/bin/clawdbot"
terminal = "kitty --hold sh -lc {cmd}"

[notifications]
urgency = "low"

[commands.gateway]
enabled = false
`)

	if cfg.CLI != "/opt/claw/bin/clawdbot" {
		t.Errorf("CLI = %q", cfg.CLI)
	}
	if cfg.Terminal != "kitty --hold sh -lc {cmd}" {
		t.Errorf("Terminal = %q", cfg.Terminal)
	}
	// Untouched values keep their defaults.
	if cfg.DashboardURL != "http://127.0.0.1:18789/" {
		t.Errorf("DashboardURL = %q", cfg.DashboardURL)
	}
	if cfg.Notifications.Urgency != "low" {
		t.Errorf("Urgency = %q", cfg.Notifications.Urgency)
	}
	if !cfg.Notifications.Enabled {
		t.Error("unset notification fields must keep defaults")
	}

	section := cfg.GetCommandConfig("gateway")
	if section == nil {
		t.Fatal("expected a gateway command section")
	}
	if enabled, ok := section["enabled"].(bool); !ok || enabled {
		t.Errorf("gateway enabled = %v", section["enabled"])
	}
}

func TestLoadBrokenUserConfigFallsBackToDefaults(t *testing.T) {
	cfg := loadIsolated(t, "this is { not toml")

	if cfg.CLI != "clawdbot" {
		t.Errorf("CLI = %q, want defaults on a broken user file", cfg.CLI)
	}
}

func TestEnsureUserConfigWritesDefaultsOnce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	if path != GetUserConfigPath() {
		t.Errorf("path = %q, want %q", path, GetUserConfigPath())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if string(data) != defaultConfigData {
		t.Error("first ensure should write the embedded defaults")
	}

	// A second ensure must leave user edits alone.
	if err := os.WriteFile(path, []byte(`cli = "mine"`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig on existing: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != `cli = "mine"` {
		t.Errorf("existing config was rewritten: %q", data)
	}
}

func TestGetLauncherArgs(t *testing.T) {
	cfg := loadIsolated(t, `
[launchers.rofi]
args = ["-theme", "claw"]
`)

	got := cfg.GetLauncherArgs("rofi")
	if len(got) != 2 || got[0] != "-theme" {
		t.Errorf("rofi args = %v", got)
	}
	if cfg.GetLauncherArgs("nonesuch") != nil {
		t.Error("unknown launcher should have no args")
	}
}
