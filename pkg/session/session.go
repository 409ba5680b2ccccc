// Package session runs one interactive jot session against a store.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"tableflip.dev/jot/pkg/nav"
	"tableflip.dev/jot/pkg/store"
	"tableflip.dev/jot/pkg/tui"
)

const (
	MinWidth  = 20
	MinHeight = 5
)

var (
	// ErrNoTerminal is returned when stdin or stdout is not a terminal.
	ErrNoTerminal = errors.New("session: stdin and stdout must be a terminal")
	// ErrTerminalTooSmall is returned when the terminal cannot fit a menu.
	ErrTerminalTooSmall = errors.New("session: terminal too small")
)

// Store is what a session needs from persistence.
type Store interface {
	nav.Store
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Options tune a session.
type Options struct {
	// Journal opens the named journal directly instead of the picker.
	Journal string
	Logger  zerolog.Logger
	// Watch refreshes the menu when the file is changed by another process.
	Watch bool
}

// checkTerminal is replaced in tests.
var checkTerminal = func() error {
	for _, f := range []*os.File{os.Stdin, os.Stdout} {
		if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
			return ErrNoTerminal
		}
	}
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoTerminal, err)
	}
	return checkSize(w, h)
}

func checkSize(w, h int) error {
	if w < MinWidth || h < MinHeight {
		return fmt.Errorf("%w: %dx%d, need at least %dx%d", ErrTerminalTooSmall, w, h, MinWidth, MinHeight)
	}
	return nil
}

// runProgram is replaced in tests.
var runProgram = func(ctx context.Context, m tui.Model) (tui.Model, error) {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(tui.Model); ok {
		m = fm
	}
	return m, err
}

// Run checks the terminal, then runs the menus until the user quits. A
// journal named in opts that does not exist fails with nav.ErrJournalNotFound
// before the terminal is touched.
func Run(ctx context.Context, st Store, opts Options) error {
	log := opts.Logger.With().Str("component", "session").Logger()

	ctrl := nav.New(st, nav.WithLogger(opts.Logger))
	var err error
	if opts.Journal != "" {
		err = ctrl.StartIn(opts.Journal)
	} else {
		err = ctrl.Start()
	}
	if err != nil {
		return err
	}

	if err := checkTerminal(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var changes <-chan store.Event
	if opts.Watch {
		changes, err = st.Watch(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("watch disabled")
			changes = nil
		}
	}

	log.Debug().Str("journal", opts.Journal).Bool("watch", changes != nil).Msg("starting")
	final, err := runProgram(ctx, tui.New(ctrl, changes))
	if err != nil && !(errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil) {
		return fmt.Errorf("session: %w", err)
	}
	if err := final.Err(); err != nil {
		return err
	}
	log.Debug().Msg("finished")
	return nil
}
