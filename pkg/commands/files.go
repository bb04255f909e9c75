package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/files"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func addFiles(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}

	cmd := &cobra.Command{
		Use:     "files",
		Aliases: []string{"ls"},
		Short:   "List stored outlines",
		Example: `
outline files
outline files --stats
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(true)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			f := files.Files{
				Service: e.svc,
				Stats:   do.Stats,
				JSON:    oo.JSON,
			}
			err = f.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddStatsArg(cmd, do)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
