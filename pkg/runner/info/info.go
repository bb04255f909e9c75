package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/outline/pkg/app"
	"tableflip.dev/outline/pkg/config"
)

// Info prints where configuration and documents live.
type Info struct {
	Config  *config.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", config.PathEnv, override)
	} else {
		_, _ = fmt.Fprintf(out, "%s env var not set\n", config.PathEnv)
	}

	if n.Config == nil {
		var err error
		if n.Config, err = config.Load(); err != nil {
			return err
		}
	}
	if n.Config.Source != "" {
		_, _ = fmt.Fprintln(out, "Config.file: ", n.Config.Source)
	}
	_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.file.default: ", n.Config.File)
	_, _ = fmt.Fprintln(out, "Log.file: ", n.Config.Log.File)

	if n.Service == nil {
		return fmt.Errorf("failed to create the document store")
	}

	names, err := n.Service.Names(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Documents:\n")
	for _, k := range names {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no documents")
	}
	return nil
}
