//go:build windows

package logger

import (
	"os"

	"golang.org/x/sys/windows"
)

// redirectStderr swaps the process stderr handle for the log file.
func redirectStderr(f *os.File) {
	windows.SetStdHandle(windows.STD_ERROR_HANDLE, windows.Handle(f.Fd())) //nolint:errcheck
	os.Stderr = f
}
