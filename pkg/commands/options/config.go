// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ConfigOptions selects the config file and how chatty the CLI is.
type ConfigOptions struct {
	File    string
	Verbose bool
}

// AddConfigArgs registers the config flags on every sub-command of cmd.
func AddConfigArgs(cmd *cobra.Command, o *ConfigOptions) {
	cmd.PersistentFlags().StringVar(&o.File, "config", "",
		"Config file (default is .outline.yaml in $OUTLINE_CONFIG_PATH, ./ or $HOME).")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log debug output to stderr.")
}
