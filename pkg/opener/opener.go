// Package opener hands URLs and files to whatever desktop opener is
// installed. All launches are best-effort, detached, and fall through a
// candidate chain; the caller decides what to do when nothing worked.
package opener

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lvim-tech/clawq/pkg/execx"
)

// candidates in preference order: the XDG opener, KDE's openers (Plasma 6
// then 5), then gio as a GNOME-adjacent fallback.
var candidates = [][]string{
	{"xdg-open"},
	{"kde-open6"},
	{"kde-open5"},
	{"gio", "open"},
}

// OpenURL opens a URL with the first available opener, detached from the
// launcher's process group. It returns an error only when every candidate is
// absent or failed to start.
func OpenURL(url string) error {
	for _, cand := range candidates {
		if !execx.CommandExists(cand[0]) {
			continue
		}
		argv := append(append([]string{}, cand[1:]...), url)
		if err := execx.StartDetached(cand[0], argv...); err != nil {
			continue
		}
		return nil
	}
	return fmt.Errorf("no URL opener found")
}

// OpenFile opens a local path (with ~ expansion) as a file:// URL.
func OpenFile(path string) error {
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return OpenURL("file://" + path)
}
