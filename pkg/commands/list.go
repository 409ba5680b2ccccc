package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/jot/pkg/commands/options"
	"tableflip.dev/jot/pkg/printers"
	"tableflip.dev/jot/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list [journal]",
		Aliases: []string{"ls"},
		Short:   "Print journals, or the notes of one journal.",
		Example: `
jot list
jot list --notes
jot list groceries
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: journalCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			defer env.Close()
			l := list.List{
				Notes:       lo.Notes,
				Printer:     &printers.PrettyPrint{Out: cmd.OutOrStdout(), Numbered: lo.Numbered},
				Persistence: env.Store,
			}
			if len(args) == 1 {
				l.Journal = args[0]
			}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
