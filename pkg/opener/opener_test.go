package opener

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// stubOpener installs a fake xdg-open on an isolated PATH that records its
// arguments, and returns the record file path.
func stubOpener(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	record := filepath.Join(dir, "calls")
	script := "#!/bin/sh\necho \"$@\" >> " + record + "\n"
	if err := os.WriteFile(filepath.Join(dir, "xdg-open"), []byte(script), 0755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	t.Setenv("PATH", dir)
	return record
}

func waitForRecord(t *testing.T, record string) string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(record); err == nil {
			return strings.TrimSpace(string(data))
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("opener was never invoked")
	return ""
}

func TestOpenFileExpandsHomeAndUsesFileURL(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	record := stubOpener(t)

	if err := OpenFile("~/.config/clawq/config.toml"); err != nil {
		t.Fatalf("OpenFile: %v", err)
	}

	want := "file://" + filepath.Join(home, ".config", "clawq", "config.toml")
	if got := waitForRecord(t, record); got != want {
		t.Errorf("opener argv = %q, want %q", got, want)
	}
}

func TestOpenURLErrorsWhenNoOpenerInstalled(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	if err := OpenURL("http://127.0.0.1:18789/"); err == nil {
		t.Fatal("expected an error with no opener on PATH")
	}
}
