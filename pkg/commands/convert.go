package commands

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/commands/options"
	"tableflip.dev/outline/pkg/runner/convert"
)

func addImport(topLevel *cobra.Command) {
	do := &options.DocumentOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a Markdown outline",
		Long: `Import a Markdown outline. Indentation sets the nesting, and "- ", "* ",
"- [ ] ", "- [x] " and "[tag] " become bullets, checkboxes and tags. Use - to
read stdin.`,
		Example: `
outline import groceries.md
outline import - --name groceries < groceries.md
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(true)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			name := do.Document(strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0])))
			if name == "-" || name == "" {
				name = e.cfg.File
			}
			i := convert.Import{
				Service:     e.svc,
				Name:        name,
				Path:        args[0],
				In:          cmd.InOrStdin(),
				IndentWidth: e.cfg.Editor.IndentWidth,
			}
			err = i.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddNameArg(cmd, do)
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command) {
	var path string

	cmd := &cobra.Command{
		Use:   "export [name]",
		Short: "Print an outline as Markdown",
		Example: `
outline export groceries
outline export groceries --out groceries.md
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

			x := convert.Export{
				Service:     e.svc,
				Name:        e.name(args),
				Path:        path,
				IndentWidth: e.cfg.Editor.IndentWidth,
				Out:         cmd.OutOrStdout(),
			}
			err = x.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&path, "out", "o", "", "Write to this file instead of stdout.")
	topLevel.AddCommand(cmd)
}
