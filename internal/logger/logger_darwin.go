//go:build darwin

package logger

import (
	"os"
	"path/filepath"
)

// getLogDir returns ~/Library/Application Support/DNS Switcher so logs stay
// writable when running from a signed .app bundle.
func getLogDir() string {
	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, "Library", "Application Support", "DNS Switcher")
	}

	// Fallback: next to executable
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
