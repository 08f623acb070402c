// Package browser hands URLs to the operating system's default handler.
package browser

import (
	"errors"
	"os/exec"
	"runtime"
)

func Open(url string) error {
	if url == "" {
		return errors.New("open: empty URL")
	}
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		// start requires a window title argument; empty string is fine.
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
