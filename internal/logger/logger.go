// Package logger provides centralized logging for the DNS switcher
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"
)

const logFileName = "dns-switcher.log"

var (
	logFile   *os.File
	mirror    io.Writer
	logMutex  sync.Mutex
	logPath   string
	listeners []func(string)
	listMutex sync.RWMutex

	stderrRedirect = redirectStderr
)

// Init opens the log file in the platform log directory and redirects
// stderr into it so panics are captured.
func Init() error {
	return open(getLogDir(), true)
}

// Dir returns the platform log directory.
func Dir() string {
	return getLogDir()
}

// InitAt opens the log file inside dir without touching stderr.
func InitAt(dir string) error {
	return open(dir, false)
}

func open(dir string, captureStderr bool) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, logFileName)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logPath = path

	if captureStderr {
		stderrRedirect(f)
		// stderr now feeds the log file; mirroring there would write every line twice
		if mirror == os.Stderr {
			mirror = nil
		}
	}
	return nil
}

// Close closes the log file
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// SetOutput mirrors every log line to w in addition to the log file.
// Pass nil to stop mirroring.
func SetOutput(w io.Writer) {
	logMutex.Lock()
	defer logMutex.Unlock()
	mirror = w
}

// AddListener adds a callback that receives log messages
func AddListener(fn func(string)) {
	listMutex.Lock()
	defer listMutex.Unlock()
	listeners = append(listeners, fn)
}

// Log writes a log message
func Log(format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("[%s] %s", timestamp, message)

	logMutex.Lock()
	if logFile != nil {
		logFile.WriteString(line + "\n")
		logFile.Sync()
	}
	if mirror != nil {
		io.WriteString(mirror, line+"\n")
	}
	logMutex.Unlock()

	listMutex.RLock()
	for _, fn := range listeners {
		go fn(line)
	}
	listMutex.RUnlock()
}

// Info logs an info message
func Info(format string, args ...any) {
	Log("INFO: "+format, args...)
}

// Error logs an error message
func Error(format string, args ...any) {
	Log("ERROR: "+format, args...)
}

// Debug logs a debug message
func Debug(format string, args ...any) {
	Log("DEBUG: "+format, args...)
}

// Warning logs a warning message
func Warning(format string, args ...any) {
	Log("WARN: "+format, args...)
}

// DNS logs a resolver change or query
func DNS(format string, args ...any) {
	Log("DNS: "+format, args...)
}

// GetLogPath returns the path to the log file
func GetLogPath() string {
	return logPath
}

// Recover should be deferred at the top of every goroutine to catch panics.
// Usage: go func() { defer logger.Recover("myGoroutine"); ... }()
func Recover(name string) {
	if r := recover(); r != nil {
		logPanic(name, r)
	}
}

// RecoverWith is Recover with a callback that runs after the panic is
// logged, so the owner can leave a consistent state behind.
func RecoverWith(name string, onPanic func(r any)) {
	if r := recover(); r != nil {
		logPanic(name, r)
		if onPanic != nil {
			onPanic(r)
		}
	}
}

func logPanic(name string, r any) {
	stack := string(debug.Stack())
	msg := fmt.Sprintf("PANIC in %s: %v\n%s", name, r, stack)
	Error("%s", msg)
	// Also write directly to file in case Log() is broken
	logMutex.Lock()
	if logFile != nil {
		logFile.WriteString(fmt.Sprintf("[%s] FATAL PANIC: %s\n",
			time.Now().Format("2006-01-02 15:04:05"), msg))
		logFile.Sync()
	}
	logMutex.Unlock()
}

// SafeGo launches a goroutine with panic recovery.
func SafeGo(name string, fn func()) {
	go func() {
		defer Recover(name)
		fn()
	}()
}

// ReadLogs reads the log file contents
func ReadLogs() (string, error) {
	path := logPath
	if path == "" {
		path = filepath.Join(getLogDir(), logFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ClearLogs truncates the log file
func ClearLogs() error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logPath == "" {
		return nil
	}
	if logFile != nil {
		logFile.Close()
	}

	if err := os.WriteFile(logPath, []byte{}, 0644); err != nil {
		return err
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	logFile = f
	return nil
}
