// Package convert moves outlines in and out of Markdown.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/checklist"
)

// Import reads a Markdown file into a stored outline.
type Import struct {
	Service *app.Service
	Name    string
	// Path is the Markdown file; "-" reads In.
	Path        string
	In          io.Reader
	IndentWidth int
	Out         io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Service == nil {
		return errors.New("can not import, no store")
	}
	r := i.In
	if i.Path != "-" {
		f, err := os.Open(i.Path)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		r = f
	}
	if r == nil {
		r = os.Stdin
	}

	doc, err := i.Service.Import(ctx, i.Name, r, i.IndentWidth)
	if err != nil {
		return err
	}

	out := i.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "imported %s - %s\n", color.New(color.Bold).Sprint(i.Name), checklist.Compute(doc))
	return nil
}

// Export writes a stored outline as Markdown.
type Export struct {
	Service *app.Service
	Name    string
	// Path is the destination file; empty or "-" writes Out.
	Path        string
	IndentWidth int
	Out         io.Writer
}

func (e *Export) Do(ctx context.Context) (err error) {
	if e.Service == nil {
		return errors.New("can not export, no store")
	}
	w := e.Out
	if e.Path != "" && e.Path != "-" {
		f, err := os.Create(e.Path)
		if err != nil {
			return fmt.Errorf("export: %w", err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}
	if w == nil {
		w = os.Stdout
	}
	return e.Service.Export(ctx, e.Name, w, e.IndentWidth)
}
