package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/prefix"
	"tableflip.dev/outline/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the typed shorthands and key bindings",
		Example: `
outline key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			km, err := cfg.Keymap()
			if err != nil {
				return oo.HandleError(err)
			}
			k := key.Key{
				Enabled: prefix.SetFromFeatures(cfg.DocumentOptions().Features),
				Keymap:  km,
			}
			err = k.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
