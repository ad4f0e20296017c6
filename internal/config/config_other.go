//go:build !darwin

package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration path next to the executable.
func GetConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName // fallback: current directory
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}
