package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

// PrettyPrint writes journals in color for humans.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Numbered prefixes each note with its position.
	Numbered bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " note")
	default:
		_, _ = c.Fprintln(pp.out(), " notes")
	}
}

// Journal prints the notes of one journal. Placeholder notes are skipped.
func (pp *PrettyPrint) Journal(notes ...string) {
	kept := make([]int, 0, len(notes))
	for i, n := range notes {
		if n != "" {
			kept = append(kept, i)
		}
	}
	if len(kept) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Faint)
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, i := range kept {
		pos, bullet := "", "•"
		if pp.Numbered {
			pos = y.Sprint(i)
		}
		for _, line := range strings.Split(notes[i], "\n") {
			tbl.AddRow(pos, bullet, line)
			pos, bullet = "", ""
		}
	}
	if pp.Numbered {
		tbl.RightAlign(0)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Journals prints a table of journal names and note counts.
func (pp *PrettyPrint) Journals(names []string, counts map[string]int) {
	if len(names) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.out(), "no journals")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Journal"), bold.Sprint("Notes"))
	for _, name := range names {
		tbl.AddRow(name, counts[name])
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// NotFound reports a missing journal in red.
func (pp *PrettyPrint) NotFound(name string) {
	r := color.New(color.FgRed)
	_, _ = r.Fprintf(pp.out(), "No journal named '%s'\n", name)
}
