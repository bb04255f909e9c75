package options

import (
	"github.com/spf13/cobra"
)

// DocumentOptions captures which outline a command works on.
type DocumentOptions struct {
	Name  string
	Stats bool
	Width int
}

// Document returns the named outline, or fallback when none was given.
func (o *DocumentOptions) Document(fallback string) string {
	if o.Name == "" {
		return fallback
	}
	return o.Name
}

// AddNameArg wires the --name flag.
func AddNameArg(cmd *cobra.Command, o *DocumentOptions) {
	cmd.Flags().StringVarP(&o.Name, "name", "n", "",
		"Specify the outline (default is the configured file).")
}

// AddStatsArg wires the --stats flag.
func AddStatsArg(cmd *cobra.Command, o *DocumentOptions) {
	cmd.Flags().BoolVar(&o.Stats, "stats", false,
		"Show line counts and checklist progress.")
}

// AddWidthArg wires the --width flag used to wrap long lines.
func AddWidthArg(cmd *cobra.Command, o *DocumentOptions) {
	cmd.Flags().IntVarP(&o.Width, "width", "w", 80,
		"Wrap lines to this many cells, 0 disables wrapping.")
}
