package commands

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tableflip.dev/jot/pkg/runner/guide"
)

func addGuide(topLevel *cobra.Command) {
	style := ""

	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Show the user guide.",
		Example: `
jot guide
jot guide --style light
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			g := guide.Guide{
				Style: style,
				Width: 80,
				Out:   cmd.OutOrStdout(),
			}
			fd := os.Stdout.Fd()
			if !isatty.IsTerminal(fd) {
				if g.Style == "" {
					g.Style = "notty"
				}
			} else if w, _, err := term.GetSize(int(fd)); err == nil && w < g.Width {
				g.Width = w
			}
			return g.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "Glamour style: dark, light or notty.")
	topLevel.AddCommand(cmd)
}
