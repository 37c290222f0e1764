// Package cliresolver locates the claw gateway CLI binary.
// Install layouts for the CLI are heterogeneous (PATH, nvm version roots,
// vendor directories), so resolution follows a fixed search order that
// prefers explicit user intent over discovery and newest version over old.
// Absence of a usable binary is a normal outcome, never an error.
package cliresolver

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultAliases are the binary names the gateway tool has shipped under.
// Order defines search priority when the configured name is not found.
var DefaultAliases = []string{"clawdbot", "moltbot", "openclaw"}

// Resolved is the outcome of a resolution attempt. Found=false still carries
// a best-guess Path so error messages can name what was looked for, and
// ConfiguredAs preserves the user's original setting verbatim.
type Resolved struct {
	Path         string
	Found        bool
	ConfiguredAs string
}

var semverDirRe = regexp.MustCompile(`^v(\d+)\.(\d+)\.(\d+)$`)

// parseVersionDir parses nvm-style directory names like "v22.14.0".
// Unparseable names sort lowest but are never disqualifying.
func parseVersionDir(name string) [3]int {
	m := semverDirRe.FindStringSubmatch(name)
	if m == nil {
		return [3]int{}
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return [3]int{major, minor, patch}
}

func versionLess(a, b [3]int) bool {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}

func expandHome(path string) string {
	if path == "~" {
		return os.Getenv("HOME")
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(os.Getenv("HOME"), path[2:])
	}
	return path
}

// Resolve finds a usable executable for the configured reference.
//
// Search order, stopping at the first hit:
//  1. absolute path (after ~ expansion): trusted verbatim, Found reflects
//     only the exec bit so errors name the exact configured path
//  2. relative path containing a separator: resolved against HOME, trusted
//     verbatim like case 1
//  3. bare name and its aliases on PATH
//  4. nvm-style installs under ~/.nvm/versions/node (newest version wins)
//  5. common install directories
//
// Resolution state is never cached; installs can change between calls.
func Resolve(reference string, aliases []string) Resolved {
	configured := strings.TrimSpace(reference)
	if configured == "" && len(aliases) > 0 {
		configured = aliases[0]
	}

	expanded := expandHome(configured)
	if filepath.IsAbs(expanded) {
		return Resolved{Path: expanded, Found: isExecutableFile(expanded), ConfiguredAs: configured}
	}

	if strings.ContainsRune(expanded, filepath.Separator) {
		path := filepath.Clean(filepath.Join(os.Getenv("HOME"), expanded))
		return Resolved{Path: path, Found: isExecutableFile(path), ConfiguredAs: configured}
	}

	primary := expanded
	names := []string{primary}
	for _, alias := range aliases {
		if alias != primary {
			names = append(names, alias)
		}
	}

	// 1) PATH lookup, primary first.
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return Resolved{Path: path, Found: true, ConfiguredAs: configured}
		}
	}

	// 2) nvm installs: ~/.nvm/versions/node/*/bin/<name>, newest first.
	if path, ok := lookupVersionRoot(filepath.Join(os.Getenv("HOME"), ".nvm", "versions", "node"), names); ok {
		return Resolved{Path: path, Found: true, ConfiguredAs: configured}
	}

	// 3) common install locations.
	commonDirs := []string{
		filepath.Join(os.Getenv("HOME"), ".local", "bin"),
		"/usr/local/bin",
		"/usr/bin",
	}
	for _, dir := range commonDirs {
		for _, name := range names {
			path := filepath.Join(dir, name)
			if isExecutableFile(path) {
				return Resolved{Path: path, Found: true, ConfiguredAs: configured}
			}
		}
	}

	return Resolved{Path: primary, Found: false, ConfiguredAs: configured}
}

// lookupVersionRoot scans a version-manager root containing per-version
// directories, each with a bin/ subdirectory, and returns the hit with the
// greatest parsed version. Equal versions resolve to the first hit found,
// which follows directory iteration order.
func lookupVersionRoot(root string, names []string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}

	var (
		best        string
		bestVersion [3]int
		found       bool
	)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		version := parseVersionDir(entry.Name())
		for _, name := range names {
			path := filepath.Join(root, entry.Name(), "bin", name)
			if !isExecutableFile(path) {
				continue
			}
			if !found || versionLess(bestVersion, version) {
				best = path
				bestVersion = version
				found = true
			}
		}
	}
	return best, found
}
