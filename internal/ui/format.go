package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/user/dns-switcher/internal/core"
	"github.com/user/dns-switcher/internal/probe"
)

func statusTitle(snap core.Snapshot) string {
	switch snap.Status {
	case core.StatusSuccess:
		if len(snap.Servers) == 0 {
			return "Automatic (no servers set)"
		}
		return "Active: " + snap.Label
	case core.StatusError:
		return "Error reading DNS settings"
	default:
		return "Loading..."
	}
}

func tooltip(snap core.Snapshot) string {
	var b strings.Builder
	b.WriteString("DNS Switcher")
	switch snap.Status {
	case core.StatusSuccess:
		fmt.Fprintf(&b, "\n%s", snap.Label)
		for _, s := range snap.Servers {
			fmt.Fprintf(&b, "\n%s", s)
		}
	case core.StatusError:
		b.WriteString("\nError")
		if snap.Err != nil {
			fmt.Fprintf(&b, "\n%v", snap.Err)
		}
	default:
		b.WriteString("\nLoading...")
	}
	return b.String()
}

func serverTitle(i int, server string) string {
	return fmt.Sprintf("%d. %s", i+1, server)
}

func probeTitle(i int, r probe.Result) string {
	if !r.Online {
		return serverTitle(i, r.Server) + "  (no answer)"
	}
	return fmt.Sprintf("%s  (%d ms)", serverTitle(i, r.Server), r.Latency.Round(time.Millisecond).Milliseconds())
}

// maxErrorLen caps the error shown in a tooltip.
const maxErrorLen = 120

// errorMessage extracts the message of an ERROR log line, first line only.
func errorMessage(line string) (string, bool) {
	_, msg, ok := strings.Cut(line, "ERROR: ")
	if !ok {
		return "", false
	}
	msg, _, _ = strings.Cut(msg, "\n")
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen] + "..."
	}
	return msg, true
}
