package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/jot/pkg/store"
)

// SessionOptions
type SessionOptions struct {
	NoWatch bool
}

func AddSessionArgs(cmd *cobra.Command, o *SessionOptions) {
	cmd.Flags().BoolVar(&o.NoWatch, "no-watch", false,
		Wrap80("Do not refresh the menu when the journal file is changed by another program."))
}

// AddConfigArgs registers the persistent flags that override config file and
// JOT_* environment values.
func AddConfigArgs(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(store.KeyPath, store.DefaultPath, "Journal file.")
	flags.String(store.KeyLogLevel, "warn", "Log level: trace, debug, info, warn, error.")
	flags.String(store.KeyLogFile, "", "Write logs to this file.")

	for _, name := range []string{store.KeyPath, store.KeyLogLevel, store.KeyLogFile} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}
