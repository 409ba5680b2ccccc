package commands

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tableflip.dev/jot/pkg/commands/options"
	"tableflip.dev/jot/pkg/journal"
	"tableflip.dev/jot/pkg/logutil"
	"tableflip.dev/jot/pkg/nav"
	"tableflip.dev/jot/pkg/printers"
	"tableflip.dev/jot/pkg/session"
	"tableflip.dev/jot/pkg/store"
)

func New() *cobra.Command {
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "jot [journal]",
		Short: options.Wrap80("Keep short notes in named journals from the terminal."),
		Long: options.Wrap80("Without arguments jot opens a menu of journals. " +
			"Given a journal name it opens that journal's notes directly. " +
			"Every change is saved immediately."),
		Example: `
jot
jot groceries
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: journalCompletions,
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openStore()
			if err != nil {
				return err
			}
			defer env.Close()

			opts := session.Options{
				Logger: env.Log,
				Watch:  !so.NoWatch,
			}
			if len(args) == 1 {
				opts.Journal = args[0]
			}

			err = session.Run(cmd.Context(), env.Store, opts)
			if errors.Is(err, nav.ErrJournalNotFound) {
				pp := printers.PrettyPrint{Out: cmd.ErrOrStderr()}
				pp.NotFound(journal.NormalizeName(opts.Journal))
			}
			return err
		},
	}

	options.AddConfigArgs(cmd)
	options.AddSessionArgs(cmd, so)
	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addAdd(topLevel)
	addInfo(topLevel)
	addGuide(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// storeEnv is the configuration, logger and store shared by every command.
type storeEnv struct {
	Config *store.FileConfig
	Store  *store.Store
	Log    zerolog.Logger

	closeLog func()
}

// Close flushes the log file, if any.
func (e *storeEnv) Close() {
	if e.closeLog != nil {
		e.closeLog()
	}
}

// openStore resolves config, builds the configured logger and opens the
// journal file.
func openStore() (*storeEnv, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logutil.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	st, err := store.Open(cfg, store.WithLogger(log))
	if err != nil {
		closeLog()
		return nil, err
	}
	return &storeEnv{Config: cfg, Store: st, Log: log, closeLog: closeLog}, nil
}
