// Package sysopen hands URLs to the desktop's default handler.
package sysopen

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// Opener launches URLs in the system browser.
type Opener struct{}

func New() *Opener {
	return &Opener{}
}

// OpenURL opens url with the platform's opener. The browser is detached;
// only launch failures are reported.
func (o *Opener) OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", url)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	case "linux":
		cmd = exec.CommandContext(ctx, "xdg-open", url)
	default:
		return fmt.Errorf("opening URLs unsupported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
