package options

import (
	"github.com/spf13/cobra"
)

// ListOptions
type ListOptions struct {
	Notes    bool
	Numbered bool
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVarP(&o.Notes, "notes", "n", false,
		"Print the notes of every journal.")
	cmd.Flags().BoolVar(&o.Numbered, "numbered", false,
		"Prefix notes with their position.")
}
