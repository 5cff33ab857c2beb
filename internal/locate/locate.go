// Package locate resolves the client database file from explicit input,
// environment overrides, tool configuration and platform defaults.
package locate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rulesweep/internal/config"
)

const (
	// StoreFileName is the fixed name of the client database file.
	StoreFileName = "client.db"
	// ClientDirName is the client's directory under the per-user
	// config directory.
	ClientDirName = "tachyon"
	// SettingsFileName is the client settings file that may redirect
	// the data directory via a "FullPath = <path>" line.
	SettingsFileName = "storage.ini"

	// EnvStorePath overrides the store location.
	EnvStorePath = "TACHYON_STORAGE_PATH"
	// EnvDataPath is an accepted alias for EnvStorePath, checked after it.
	EnvDataPath = "TACHYON_DATA_PATH"
)

// NotFoundError reports that no candidate location held a store file.
type NotFoundError struct {
	Checked []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s found; checked: %s",
		StoreFileName, strings.Join(e.Checked, ", "))
}

// Resolve returns the store file to open. explicit may be empty.
// The first candidate that exists as a regular file wins.
func Resolve(explicit string) (string, error) {
	candidates := Candidates(explicit)
	for _, c := range candidates {
		info, err := os.Stat(c)
		if err == nil && info.Mode().IsRegular() {
			return c, nil
		}
	}
	return "", &NotFoundError{Checked: candidates}
}

// Candidates produces the normalized, de-duplicated candidate paths in
// priority order: explicit argument, environment overrides, tool
// config, then the platform default (possibly redirected by storage.ini).
// Deduplication is case-insensitive and keeps the first occurrence.
func Candidates(explicit string) []string {
	var raw []string
	if strings.TrimSpace(explicit) != "" {
		raw = append(raw, explicit)
	}
	for _, env := range []string{EnvStorePath, EnvDataPath} {
		if v := os.Getenv(env); strings.TrimSpace(v) != "" {
			raw = append(raw, v)
		}
	}
	if cfg, err := config.Load(); err == nil && cfg.StorePath != "" {
		raw = append(raw, cfg.StorePath)
	}
	if def := defaultDir(); def != "" {
		raw = append(raw, redirectedDir(def))
	}

	seen := make(map[string]bool, len(raw))
	var out []string
	for _, r := range raw {
		n := Normalize(r)
		if n == "" {
			continue
		}
		key := strings.ToLower(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

// Normalize canonicalizes one candidate path: trims whitespace, expands
// a leading tilde and embedded environment references, strips trailing
// separators, appends the store file name when the path is a directory
// or an extensionless non-existent path, and resolves to absolute.
// Normalizing an already-normalized path returns it unchanged.
func Normalize(path string) string {
	p := strings.TrimSpace(path)
	p = expandTilde(p)
	p = os.ExpandEnv(p)
	p = trimTrailingSeparators(p)
	if p == "" {
		return ""
	}
	if shouldAppendFileName(p) {
		p = filepath.Join(p, StoreFileName)
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.Clean(p)
}

// defaultDir returns the platform per-user data directory for the client.
func defaultDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, ClientDirName)
}

// redirectedDir applies a FullPath override from storage.ini in dir, if any.
func redirectedDir(dir string) string {
	if p := settingsFullPath(filepath.Join(dir, SettingsFileName)); p != "" {
		return p
	}
	return dir
}

// expandTilde expands a bare "~" or a leading "~/" to the user's home
// directory. Other tilde forms (like "~user") are left alone.
func expandTilde(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p // Return original if we can't get home directory
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}

// trimTrailingSeparators drops trailing path separators without
// touching a root path like "/".
func trimTrailingSeparators(p string) string {
	for len(p) > 1 && os.IsPathSeparator(p[len(p)-1]) {
		p = p[:len(p)-1]
	}
	return p
}

// shouldAppendFileName reports whether the candidate names the store
// directory rather than the store file: an existing directory, or a
// non-existent path with no file extension.
func shouldAppendFileName(p string) bool {
	info, err := os.Stat(p)
	if err == nil {
		return info.IsDir()
	}
	return filepath.Ext(p) == ""
}
