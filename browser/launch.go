package browser

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// Open opens url in the default browser. Failure is logged, never fatal: the
// preview stays reachable at the printed address.
func Open(url string) {
	if err := launch(url); err != nil {
		slog.Warn("Failed to open browser", "error", err)
		slog.Info("Manual browser access", "url", url)
	}
}

// launchCommand returns the platform command that opens url.
func launchCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

func launch(url string) error {
	cmd, err := launchCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	return cmd.Start()
}
