package opener

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// UrlOpener launches a URL in the user's default browser. Implementations must
// respect ctx cancellation; callers impose the per-call timeout.
type UrlOpener interface {
	Open(ctx context.Context, url string) error
}

// SystemOpener shells out to the platform's open command.
type SystemOpener struct{}

func NewSystemOpener() *SystemOpener {
	return &SystemOpener{}
}

func (o *SystemOpener) Open(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "cmd", "/C", "start", "", url)
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	default:
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch browser command: %w", err)
	}

	// Don't wait for the browser to close, just ensure the command started.
	// Reap the process in the background so it doesn't linger as a zombie.
	go func() { _ = cmd.Wait() }()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return nil
}
