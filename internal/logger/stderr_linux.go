//go:build linux

package logger

import (
	"os"

	"golang.org/x/sys/unix"
)

// redirectStderr points fd 2 at the log file. Dup2 is missing on some
// linux architectures, Dup3 is not.
func redirectStderr(f *os.File) {
	unix.Dup3(int(f.Fd()), int(os.Stderr.Fd()), 0)
}
