// Package menu holds the navigable list state shown by jot: a title, an
// ordered set of options, a cursor, and the keymap for the menu kind.
package menu

import (
	"fmt"
	"strings"
)

// Kind selects the keymap a menu installs.
type Kind int

const (
	// KindSelect lists journal names.
	KindSelect Kind = iota
	// KindJournal lists the notes of one journal.
	KindJournal
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindJournal:
		return "journal"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SelectTitle heads the journal picker.
const SelectTitle = "Select Journal (ENTER): (a)dd, (e)dit, (r)emove, (q)uit, (h)elp"

// HelpFooter is appended to a title by the help command.
const HelpFooter = "\n\nDocumentation can be found with: jot guide"

// JournalTitle heads the note list of the named journal.
func JournalTitle(name string) string {
	return fmt.Sprintf("Journal [%s]\n\n(a)dd, (r)emove, (e)dit, (q)uit, (h)elp, (b)ack", name)
}

// Menu is the state behind one rendered list. The cursor always satisfies
// 0 <= index < max(1, len(options)).
type Menu struct {
	kind    Kind
	title   string
	options []string
	index   int
	keymap  Keymap
	hidden  bool
}

// New returns a menu of kind with the cursor on the first option.
func New(kind Kind, title string, options []string) *Menu {
	return &Menu{
		kind:    kind,
		title:   title,
		options: append([]string(nil), options...),
		keymap:  KeymapFor(kind),
	}
}

// Kind reports which keymap the menu carries.
func (m *Menu) Kind() Kind { return m.kind }

// Title is the heading, including the help footer when shown.
func (m *Menu) Title() string { return m.title }

// SetTitle replaces the title.
func (m *Menu) SetTitle(title string) { m.title = title }

// Options returns a copy of the option list.
func (m *Menu) Options() []string { return append([]string(nil), m.options...) }

// Index is the cursor position.
func (m *Menu) Index() int { return m.index }

// Len is the number of options.
func (m *Menu) Len() int { return len(m.options) }

// Empty reports whether there is nothing to point the cursor at.
func (m *Menu) Empty() bool { return len(m.options) == 0 }

// Keymap is the key table installed for the menu kind.
func (m *Menu) Keymap() Keymap { return m.keymap }

// Selected returns the option under the cursor.
func (m *Menu) Selected() (string, bool) {
	if m.Empty() {
		return "", false
	}
	return m.options[m.index], true
}

// SetOptions replaces the option list and clamps the cursor.
func (m *Menu) SetOptions(options []string) {
	m.options = append([]string(nil), options...)
	m.clamp()
}

// Select moves the cursor to i, clamped to the option list.
func (m *Menu) Select(i int) {
	m.index = i
	m.clamp()
}

// SelectOption moves the cursor to the first option equal to opt and reports
// whether it was found.
func (m *Menu) SelectOption(opt string) bool {
	for i, o := range m.options {
		if o == opt {
			m.index = i
			return true
		}
	}
	return false
}

// MoveUp moves the cursor one row up, stopping at the first option.
func (m *Menu) MoveUp() { m.Select(m.index - 1) }

// MoveDown moves the cursor one row down, stopping at the last option.
func (m *Menu) MoveDown() { m.Select(m.index + 1) }

// MoveTop moves the cursor to the first option.
func (m *Menu) MoveTop() { m.Select(0) }

// MoveBottom moves the cursor to the last option.
func (m *Menu) MoveBottom() { m.Select(len(m.options) - 1) }

// Move applies a cursor movement command. Other commands are ignored.
func (m *Menu) Move(cmd Command) {
	switch cmd {
	case CommandMoveUp:
		m.MoveUp()
	case CommandMoveDown:
		m.MoveDown()
	case CommandMoveTop:
		m.MoveTop()
	case CommandMoveBottom:
		m.MoveBottom()
	}
}

// ShowHelp appends HelpFooter to the title once.
func (m *Menu) ShowHelp() {
	if strings.HasSuffix(m.title, HelpFooter) {
		return
	}
	m.title += HelpFooter
}

// Hide blanks the menu while another surface owns the screen.
func (m *Menu) Hide() { m.hidden = true }

// Show restores a hidden menu.
func (m *Menu) Show() { m.hidden = false }

// Hidden reports whether the menu is blanked.
func (m *Menu) Hidden() bool { return m.hidden }

// Resolve maps a key string to the command bound in this menu's keymap.
func (m *Menu) Resolve(key string) Command {
	cmd, ok := m.keymap.Lookup(key)
	if !ok {
		return CommandNone
	}
	return cmd
}

func (m *Menu) clamp() {
	if m.index >= len(m.options) {
		m.index = len(m.options) - 1
	}
	if m.index < 0 {
		m.index = 0
	}
}
