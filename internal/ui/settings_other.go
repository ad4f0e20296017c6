//go:build !darwin

package ui

import "os/exec"

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

func openTextFile(path string) error {
	return openFile(path)
}

func openFile(path string) error {
	return exec.Command("xdg-open", path).Start()
}
