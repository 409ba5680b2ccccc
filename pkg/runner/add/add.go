// Package add appends a note to a journal without opening the menus.
package add

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"tableflip.dev/jot/pkg/journal"
	"tableflip.dev/jot/pkg/printers"
	"tableflip.dev/jot/pkg/prompt"
	"tableflip.dev/jot/pkg/store"
)

type Add struct {
	Journal string
	Message string
	// Quiet skips printing the journal after the note is added.
	Quiet bool

	Printer     *printers.PrettyPrint
	Persistence store.Persistence
	Log         zerolog.Logger
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	note := prompt.Normalize(n.Message)
	if note == "" {
		return errors.New("add: note is empty")
	}

	c, err := n.Persistence.Load()
	if err != nil {
		return err
	}
	name, err := c.Create(n.Journal)
	switch {
	case err == nil:
		n.Log.Debug().Str("journal", name).Msg("created journal")
	case errors.Is(err, journal.ErrExists):
	default:
		return err
	}

	if err := c.AddNote(name, note); err != nil {
		return err
	}
	if err := n.Persistence.Save(c); err != nil {
		return err
	}
	n.Log.Debug().Str("journal", name).Int("notes", len(c[name])).Msg("added note")

	if n.Quiet {
		return nil
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.Title(name)
	pp.Journal(c[name]...)
	return nil
}

// Join builds a note from command line words.
func Join(words []string) string {
	return strings.TrimSpace(strings.Join(words, " "))
}
