package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/runner/create"
)

func addNew(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create an empty outline",
		Long:  "Create an empty outline. Without a name a random one is generated.",
		Example: `
outline new groceries
outline new
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(true)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			c := create.Create{Service: e.svc}
			if len(args) > 0 {
				c.Name = args[0]
			}
			err = c.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
