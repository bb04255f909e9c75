package ui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/outline/pkg/tui/editor"
)

// ErrNotTerminal is returned when the editor is started without a terminal.
var ErrNotTerminal = errors.New("the editor needs an interactive terminal")

// UI opens the terminal editor on one outline.
type UI struct {
	Editor editor.Options

	// isTerminal reports whether fd is a terminal; nil checks for real.
	isTerminal func(fd uintptr) bool
}

func (d *UI) Do(ctx context.Context) error {
	check := d.isTerminal
	if check == nil {
		check = func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	if !check(os.Stdin.Fd()) || !check(os.Stdout.Fd()) {
		return ErrNotTerminal
	}

	opts := d.Editor
	opts.Context = ctx
	return editor.Run(opts)
}
