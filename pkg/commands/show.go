package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/show"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func addShow(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}

	cmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print an outline",
		Example: `
outline show
outline show groceries --width 60
outline show groceries --json
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return documentCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(true)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := show.Show{
				Service: e.svc,
				Name:    e.name(args),
				JSON:    oo.JSON,
				Layout:  e.layout,
				Width:   do.Width,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddWidthArg(cmd, do)
	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
