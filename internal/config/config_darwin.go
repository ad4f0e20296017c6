//go:build darwin

package config

import (
	"os"
	"path/filepath"
)

// GetConfigPath returns the configuration path inside the app bundle,
// Contents/Resources/dns_config.yaml, when it exists; otherwise the file
// next to the executable.
func GetConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}

	bundled := filepath.Join(filepath.Dir(filepath.Dir(exe)), "Resources", FileName)
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}
