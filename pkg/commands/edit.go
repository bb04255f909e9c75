package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/outline/pkg/autosave"
	"tableflip.dev/outline/pkg/runner/ui"
	"tableflip.dev/outline/pkg/tui/editor"
	"tableflip.dev/outline/pkg/tui/theme"
)

func addEdit(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "edit [name]",
		Aliases: []string{"ui"},
		Short:   "Open the outline editor",
		Example: `
outline edit
outline edit groceries
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return documentCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := load(false)
			if err != nil {
				return err
			}
			defer e.close()

			km, err := e.cfg.Keymap()
			if err != nil {
				return err
			}
			i := ui.UI{Editor: editor.Options{
				Service: e.svc,
				Name:    e.name(args),
				Keymap:  km,
				Layout:  e.layout,
				Theme:   theme.Default(e.cfg.Editor.MaxIndentLevel + 1),
				Autosave: autosave.Options{
					Delay:  e.cfg.Autosave.Delay,
					Notice: e.cfg.Autosave.Notice,
					Logger: e.log,
				},
				Logger: e.log,
			}}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
