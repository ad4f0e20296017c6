package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWritesFileAndMirror(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitAt(dir))
	defer Close()

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	DNS("applied %s", "8.8.8.8")
	Warning("slow %d", 3)

	assert.Equal(t, filepath.Join(dir, logFileName), GetLogPath())

	data, err := ReadLogs()
	require.NoError(t, err)
	assert.Contains(t, data, "DNS: applied 8.8.8.8")
	assert.Contains(t, data, "WARN: slow 3")
	assert.Contains(t, buf.String(), "DNS: applied 8.8.8.8")

	require.NoError(t, ClearLogs())
	data, err = ReadLogs()
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestAddListener(t *testing.T) {
	got := make(chan string, 1)
	AddListener(func(line string) {
		select {
		case got <- line:
		default:
		}
	})

	Info("listener %s", "check")

	select {
	case line := <-got:
		assert.Contains(t, line, "INFO: listener check")
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not called")
	}
}

func TestSafeGoRecovers(t *testing.T) {
	done := make(chan struct{})
	SafeGo("panicker", func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("goroutine did not finish")
	}
}

func TestRecoverWithCallsBack(t *testing.T) {
	got := make(chan any, 1)
	SafeGo("outer", func() {
		defer RecoverWith("worker", func(r any) { got <- r })
		panic("boom")
	})

	select {
	case r := <-got:
		assert.Equal(t, "boom", r)
	case <-time.After(2 * time.Second):
		t.Fatal("callback was not called")
	}
}

func TestCaptureStderrDropsTerminalMirror(t *testing.T) {
	var redirected *os.File
	stderrRedirect = func(f *os.File) { redirected = f }
	defer func() { stderrRedirect = redirectStderr }()

	SetOutput(os.Stderr)
	defer SetOutput(nil)

	require.NoError(t, open(t.TempDir(), true))
	defer Close()

	assert.NotNil(t, redirected)
	logMutex.Lock()
	assert.Nil(t, mirror)
	logMutex.Unlock()
}

func TestCaptureStderrKeepsOtherMirror(t *testing.T) {
	stderrRedirect = func(*os.File) {}
	defer func() { stderrRedirect = redirectStderr }()

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	require.NoError(t, open(t.TempDir(), true))
	defer Close()

	Info("still mirrored")
	assert.Contains(t, buf.String(), "INFO: still mirrored")
}
