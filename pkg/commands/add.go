package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/jot/pkg/commands/options"
	"tableflip.dev/jot/pkg/printers"
	"tableflip.dev/jot/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	quiet := false

	cmd := &cobra.Command{
		Use:   "add <journal> <note...>",
		Short: options.Wrap80("Append a note to a journal, creating the journal if needed."),
		Example: `
jot add groceries oat milk
jot add work "call back re: invoice"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("a journal and a note are required")
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return journalCompletions(cmd, args, toComplete)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			env, err := openStore()
			if err != nil {
				return oo.HandleError(err)
			}
			defer env.Close()
			a := add.Add{
				Journal:     args[0],
				Message:     add.Join(args[1:]),
				Quiet:       quiet,
				Printer:     &printers.PrettyPrint{Out: cmd.OutOrStdout()},
				Persistence: env.Store,
				Log:         env.Log,
			}
			return oo.HandleError(a.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the journal afterwards.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
