package session

import (
	"os"
	"path/filepath"
	"strings"
)

const defaultFileName = "session.db"

// ResolveDefaultPath returns the per-user session file location.
func ResolveDefaultPath() string {
	base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME"))
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		if dir, err := os.UserConfigDir(); err == nil && strings.TrimSpace(dir) != "" {
			base = dir
		}
	}
	if base == "" {
		return filepath.Join(".aidex", defaultFileName)
	}
	return filepath.Join(base, "aidex", defaultFileName)
}
