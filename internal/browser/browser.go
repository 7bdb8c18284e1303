// Package browser opens run URLs in the system's default browser.
package browser

import (
	"os/exec"
	"runtime"
)

// execCommand builds the launcher command. Tests override it so nothing
// actually opens.
var execCommand = func(name string, args ...string) starter {
	return exec.Command(name, args...)
}

type starter interface {
	Start() error
}

// Open opens url in the default browser without waiting for it to exit.
func Open(url string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name = "open"
		args = []string{url}
	case "windows":
		name = "cmd"
		args = []string{"/c", "start", url}
	default:
		name = "xdg-open"
		args = []string{url}
	}

	return execCommand(name, args...).Start()
}
