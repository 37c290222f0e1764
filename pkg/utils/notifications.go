// Package utils provides notification helpers for clawq.
// Notifications are best-effort: a missing notification daemon or tool must
// never break an action, so failures are swallowed here.
package utils

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/lvim-tech/clawq/pkg/config"
	"github.com/lvim-tech/clawq/pkg/execx"
)

// NotifyWithConfig sends a notification using the provided config.
func NotifyWithConfig(cfg *config.NotificationConfig, title, message string) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	// If in terminal and ShowInTerminal is enabled, print to stdout.
	if cfg.ShowInTerminal && IsTerminal() {
		fmt.Printf("[%s] %s\n", title, message)
		return
	}

	tool := cfg.Tool
	if tool == "" || tool == "auto" {
		tool = detectNotificationTool()
	}

	sendNotification(tool, title, message, cfg.Timeout, cfg.Urgency, "normal")
}

// ShowErrorNotificationWithConfig sends an error notification using the
// provided config.
func ShowErrorNotificationWithConfig(cfg *config.NotificationConfig, title, message string) {
	if cfg == nil || !cfg.Enabled {
		return
	}

	if cfg.ShowInTerminal && IsTerminal() {
		fmt.Fprintf(os.Stderr, "[ERROR] [%s] %s\n", title, message)
		return
	}

	tool := cfg.Tool
	if tool == "" || tool == "auto" {
		tool = detectNotificationTool()
	}

	sendNotification(tool, title, message, cfg.Timeout, "critical", "critical")
}

// detectNotificationTool detects which notification tool is available.
func detectNotificationTool() string {
	if execx.CommandExists("dunstify") {
		return "dunstify"
	}
	if execx.CommandExists("notify-send") {
		return "notify-send"
	}
	return ""
}

// sendNotification sends a notification using the specified tool. The child
// is started, not waited on.
func sendNotification(tool, title, message string, timeout int, urgency, fallbackUrgency string) {
	if tool == "" {
		return
	}

	if urgency == "" {
		urgency = fallbackUrgency
	}
	if timeout <= 0 {
		timeout = 5000
	}

	var cmd *exec.Cmd
	switch tool {
	case "dunstify":
		cmd = exec.Command("dunstify",
			"-u", urgency,
			"-t", strconv.Itoa(timeout),
			title,
			message)
	case "notify-send":
		cmd = exec.Command("notify-send",
			"-u", urgency,
			"-t", strconv.Itoa(timeout),
			title,
			message)
	default:
		return
	}

	cmd.Env = os.Environ()
	_ = cmd.Start()
}

// IsTerminal checks if the program is running in an interactive terminal.
func IsTerminal() bool {
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	if stdinInfo.Mode()&os.ModeCharDevice == 0 {
		return false
	}

	tty, err := os.Open("/dev/tty")
	if err != nil {
		return false
	}
	tty.Close()

	return true
}
