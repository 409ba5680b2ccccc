// Package list prints journals and their notes.
package list

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/jot/pkg/journal"
	"tableflip.dev/jot/pkg/printers"
	"tableflip.dev/jot/pkg/store"
)

type List struct {
	// Journal limits output to one journal. Empty prints every journal.
	Journal string
	// Notes prints the notes of every journal instead of a summary table.
	Notes       bool
	Printer     *printers.PrettyPrint
	Persistence store.Persistence
}

func (n *List) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}

	c, err := n.Persistence.Load()
	if err != nil {
		return err
	}

	if n.Journal != "" {
		name, ok := c.Lookup(n.Journal)
		if !ok {
			pp.NotFound(journal.NormalizeName(n.Journal))
			return fmt.Errorf("%w: %q", journal.ErrNotFound, journal.NormalizeName(n.Journal))
		}
		pp.NewLine()
		pp.TitleWithCount(name, count(c[name]))
		pp.Journal(c[name]...)
		return nil
	}

	names := c.Names()
	if !n.Notes {
		counts := make(map[string]int, len(names))
		for _, name := range names {
			counts[name] = count(c[name])
		}
		pp.Journals(names, counts)
		return nil
	}

	pp.NewLine()
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}
		pp.TitleWithCount(name, count(c[name]))
		pp.Journal(c[name]...)
	}
	return nil
}

// count is the number of notes that are not the placeholder.
func count(notes []string) int {
	n := 0
	for _, note := range notes {
		if note != journal.Placeholder {
			n++
		}
	}
	return n
}
