package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/user/dns-switcher/internal/core"
)

func TestAcceptDropsStaleSnapshots(t *testing.T) {
	uiMu.Lock()
	defer uiMu.Unlock()
	lastSeq = 0
	defer func() { lastSeq = 0 }()

	// a success delivered before the loading snapshot of the same operation
	success := core.Snapshot{Status: core.StatusSuccess, Generation: 1, Seq: 2}
	loading := core.Snapshot{Status: core.StatusLoading, Generation: 1, Seq: 1}

	assert.True(t, acceptLocked(success))
	assert.False(t, acceptLocked(loading))
	assert.False(t, acceptLocked(success), "same snapshot twice")
	assert.True(t, acceptLocked(core.Snapshot{Status: core.StatusLoading, Generation: 2, Seq: 3}))
}

func TestErrorMessage(t *testing.T) {
	msg, ok := errorMessage("[2026-01-02 10:00:00] ERROR: DNS query failed: exit status 1")
	assert.True(t, ok)
	assert.Equal(t, "DNS query failed: exit status 1", msg)

	msg, ok = errorMessage("[2026-01-02 10:00:00] ERROR: PANIC in refresh: boom\ngoroutine 7 [running]:")
	assert.True(t, ok)
	assert.Equal(t, "PANIC in refresh: boom", msg)

	msg, ok = errorMessage("[2026-01-02 10:00:00] ERROR: " + strings.Repeat("x", 300))
	assert.True(t, ok)
	assert.Len(t, msg, maxErrorLen+3)

	_, ok = errorMessage("[2026-01-02 10:00:00] INFO: DNS service starting")
	assert.False(t, ok)
}
