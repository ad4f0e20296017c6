//go:build darwin

package ui

import "os/exec"

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// openTextFile opens path in the default text editor.
func openTextFile(path string) error {
	return exec.Command("open", "-t", path).Start()
}

func openFile(path string) error {
	return exec.Command("open", path).Start()
}
