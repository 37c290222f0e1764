package openconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lvim-tech/clawq/pkg/config"
)

func TestOpenCreatesConfigAndHandsItToOpener(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	bin := t.TempDir()
	record := filepath.Join(bin, "calls")
	script := "#!/bin/sh\necho \"$@\" >> " + record + "\n"
	if err := os.WriteFile(filepath.Join(bin, "xdg-open"), []byte(script), 0755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", bin)

	path, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if path != config.GetUserConfigPath() {
		t.Errorf("path = %q, want %q", path, config.GetUserConfigPath())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file was not created: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if data, err := os.ReadFile(record); err == nil {
			if got := strings.TrimSpace(string(data)); got != "file://"+path {
				t.Errorf("opener argv = %q, want %q", got, "file://"+path)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("opener was never invoked")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
