//go:build darwin

package main

import (
	"os"
	"strings"
)

func init() {
	// Finder and launchd start apps with a minimal PATH; the system tools
	// we run live in /usr/sbin and /sbin, which may be missing from a
	// user-provided PATH as well.
	extraPaths := []string{
		"/usr/sbin",
		"/sbin",
		"/usr/bin",
		"/bin",
	}

	current := os.Getenv("PATH")
	existing := make(map[string]bool)
	for _, p := range strings.Split(current, ":") {
		existing[p] = true
	}

	var toAdd []string
	for _, p := range extraPaths {
		if !existing[p] {
			toAdd = append(toAdd, p)
		}
	}
	if len(toAdd) == 0 {
		return
	}
	if current == "" {
		os.Setenv("PATH", strings.Join(toAdd, ":"))
		return
	}
	os.Setenv("PATH", current+":"+strings.Join(toAdd, ":"))
}
