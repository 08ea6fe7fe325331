// Package editor launches the user's text editor on catalog files.
package editor

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"ggufcat/internal/ports"
)

// Fallbacks tried in order when no editor is configured
var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.Editor
type Opener struct {
	editor   string
	lookPath func(string) (string, error)

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Ensure Opener implements Editor
var _ ports.Editor = (*Opener)(nil)

// NewOpener creates an opener for editor, a command line such as "code --wait".
// An empty editor falls back to the first of nvim, vim, vi or nano on PATH.
func NewOpener(editor string, stdin io.Reader, stdout, stderr io.Writer) *Opener {
	return &Opener{
		editor:   strings.TrimSpace(editor),
		lookPath: exec.LookPath,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
}

// Open runs the editor on path and waits for it to exit
func (o *Opener) Open(ctx context.Context, path string) error {
	cmd, err := o.Command(ctx, path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s failed: %w", cmd.Args[0], err)
	}
	return nil
}

// Command returns the exec.Cmd that opens path
func (o *Opener) Command(ctx context.Context, path string) (*exec.Cmd, error) {
	args := strings.Fields(o.editor)
	if len(args) == 0 {
		found := o.findFallback()
		if found == "" {
			return nil, fmt.Errorf("no editor found: set $EDITOR or editor in the config file")
		}
		args = []string{found}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = o.stdin
	cmd.Stdout = o.stdout
	cmd.Stderr = o.stderr
	return cmd, nil
}

func (o *Opener) findFallback() string {
	for _, name := range fallbackEditors {
		if path, err := o.lookPath(name); err == nil {
			return path
		}
	}
	return ""
}
