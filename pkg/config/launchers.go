package config

// LauncherConfig holds extra arguments for each menu launcher.
type LauncherConfig struct {
	Dmenu  LauncherCommand `toml:"dmenu"`
	Rofi   LauncherCommand `toml:"rofi"`
	Fzf    LauncherCommand `toml:"fzf"`
	Bemenu LauncherCommand `toml:"bemenu"`
	Fuzzel LauncherCommand `toml:"fuzzel"`
}

// LauncherCommand describes how to invoke one launcher.
type LauncherCommand struct {
	Args []string `toml:"args"`
}

// GetLauncherArgs returns the configured args for a launcher by name.
func (c *Config) GetLauncherArgs(name string) []string {
	switch name {
	case "dmenu":
		return c.Launchers.Dmenu.Args
	case "rofi":
		return c.Launchers.Rofi.Args
	case "fzf":
		return c.Launchers.Fzf.Args
	case "bemenu":
		return c.Launchers.Bemenu.Args
	case "fuzzel":
		return c.Launchers.Fuzzel.Args
	default:
		return nil
	}
}

// mergeLauncherConfigs overlays user launcher args onto the defaults.
func mergeLauncherConfigs(merged *LauncherConfig, user *LauncherConfig) {
	if len(user.Dmenu.Args) > 0 {
		merged.Dmenu.Args = user.Dmenu.Args
	}
	if len(user.Rofi.Args) > 0 {
		merged.Rofi.Args = user.Rofi.Args
	}
	if len(user.Fzf.Args) > 0 {
		merged.Fzf.Args = user.Fzf.Args
	}
	if len(user.Bemenu.Args) > 0 {
		merged.Bemenu.Args = user.Bemenu.Args
	}
	if len(user.Fuzzel.Args) > 0 {
		merged.Fuzzel.Args = user.Fuzzel.Args
	}
}
