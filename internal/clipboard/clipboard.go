// Package clipboard copies formatted citations to the system clipboard via
// the platform's copy command.
package clipboard

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// ErrClipboardUnavailable is returned when no copy command is installed.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// candidates lists copy commands per GOOS in order of preference.
var candidates = map[string][][]string{
	"darwin":  {{"pbcopy"}},
	"linux":   {{"wl-copy"}, {"xclip", "-selection", "clipboard"}, {"xsel", "--clipboard", "--input"}},
	"windows": {{"clip"}},
}

// copyCommand picks the first installed command for goos.
func copyCommand(goos string, lookPath func(string) (string, error)) ([]string, error) {
	for _, argv := range candidates[goos] {
		if _, err := lookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, ErrClipboardUnavailable
}

// IsAvailable reports whether a copy command exists on this system.
func IsAvailable() bool {
	_, err := copyCommand(runtime.GOOS, exec.LookPath)
	return err == nil
}

// Copy writes text to the system clipboard.
func Copy(ctx context.Context, text string) error {
	argv, err := copyCommand(runtime.GOOS, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}
