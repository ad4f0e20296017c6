package ui

import (
	"os"

	"github.com/user/dns-switcher/internal/logger"
)

// configPath is the file opened by "Edit config...".
var configPath string

// ShowSettingsWindow opens the configuration file in the user's editor.
// Changes take effect after a restart.
func ShowSettingsWindow() {
	if configPath == "" {
		return
	}
	// Try $EDITOR first, then the platform opener
	if editor := os.Getenv("EDITOR"); editor != "" {
		if err := startCommand(editor, configPath); err == nil {
			return
		}
	}
	if err := openTextFile(configPath); err != nil {
		logger.Error("Failed to open config file %s: %v", configPath, err)
	}
}

func openLogFile() {
	logPath := logger.GetLogPath()
	if logPath == "" {
		return
	}
	if err := openFile(logPath); err != nil {
		logger.Error("Failed to open log file: %v", err)
	}
}
