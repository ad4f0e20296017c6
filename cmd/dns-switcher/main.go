// DNS Switcher - menu bar app and command line tool for the system resolver
package main

import (
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
