// Package clipboard reads and writes the system clipboard through the
// platform's clipboard tool.
package clipboard

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Clipboard is the system clipboard.
type Clipboard struct{}

func New() *Clipboard {
	return &Clipboard{}
}

// ReadText returns the clipboard's text contents.
func (c *Clipboard) ReadText(ctx context.Context) (string, error) {
	name, args, err := readCommand()
	if err != nil {
		return "", err
	}
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return string(out), nil
}

// WriteText replaces the clipboard's contents with text.
func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	name, args, err := writeCommand()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func readCommand() (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "pbpaste", nil, nil
	case "linux":
		if _, err := exec.LookPath("wl-paste"); err == nil {
			return "wl-paste", []string{"--no-newline"}, nil
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard", "-o"}, nil
		}
		return "", nil, fmt.Errorf("no clipboard tool found (need wl-paste or xclip)")
	default:
		return "", nil, fmt.Errorf("clipboard unsupported on %s", runtime.GOOS)
	}
}

func writeCommand() (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "pbcopy", nil, nil
	case "linux":
		if _, err := exec.LookPath("wl-copy"); err == nil {
			return "wl-copy", nil, nil
		}
		if _, err := exec.LookPath("xclip"); err == nil {
			return "xclip", []string{"-selection", "clipboard"}, nil
		}
		return "", nil, fmt.Errorf("no clipboard tool found (need wl-copy or xclip)")
	default:
		return "", nil, fmt.Errorf("clipboard unsupported on %s", runtime.GOOS)
	}
}

// Memory is an in-process clipboard for tests.
type Memory struct {
	Contents string
	ReadErr  error
	WriteErr error
}

func (m *Memory) ReadText(ctx context.Context) (string, error) {
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.Contents, nil
}

func (m *Memory) WriteText(ctx context.Context, text string) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.Contents = text
	return nil
}
