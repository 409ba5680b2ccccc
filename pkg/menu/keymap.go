package menu

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
)

// Command is the closed set of actions a key can trigger.
type Command int

const (
	// CommandNone is returned for unbound keys.
	CommandNone Command = iota
	// CommandQuit ends the session.
	CommandQuit
	// CommandAdd prompts for a new journal or note.
	CommandAdd
	// CommandRemove deletes the option under the cursor.
	CommandRemove
	// CommandEdit prompts to change the option under the cursor.
	CommandEdit
	// CommandBack returns from a journal to the picker.
	CommandBack
	// CommandHelp adds the help footer to the title.
	CommandHelp
	// Cursor movement.
	CommandMoveUp
	CommandMoveDown
	CommandMoveTop
	CommandMoveBottom
	// CommandSelect opens the journal under the cursor.
	CommandSelect
)

var commandNames = map[Command]string{
	CommandNone:       "none",
	CommandQuit:       "quit",
	CommandAdd:        "add",
	CommandRemove:     "remove",
	CommandEdit:       "edit",
	CommandBack:       "back",
	CommandHelp:       "help",
	CommandMoveUp:     "up",
	CommandMoveDown:   "down",
	CommandMoveTop:    "top",
	CommandMoveBottom: "bottom",
	CommandSelect:     "select",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Positional reports whether the command acts on the option under the cursor.
func (c Command) Positional() bool {
	switch c {
	case CommandRemove, CommandEdit, CommandSelect:
		return true
	default:
		return false
	}
}

// Keymap maps key strings (as reported by tea.KeyPressMsg.String) to
// commands.
type Keymap struct {
	keys map[string]Command
}

// NewKeymap returns an empty keymap.
func NewKeymap() Keymap {
	return Keymap{keys: make(map[string]Command)}
}

// Bind maps each key to cmd. A key bound twice keeps the last command.
func (k Keymap) Bind(cmd Command, keys ...string) Keymap {
	for _, s := range keys {
		k.keys[s] = cmd
	}
	return k
}

// Lookup returns the command bound to key.
func (k Keymap) Lookup(s string) (Command, bool) {
	cmd, ok := k.keys[s]
	return cmd, ok
}

// Keys returns the keys bound to cmd in sorted order.
func (k Keymap) Keys(cmd Command) []string {
	var out []string
	for s, c := range k.keys {
		if c == cmd {
			out = append(out, s)
		}
	}
	sortKeys(out)
	return out
}

// helpOrder fixes how bindings are listed in the help line.
var helpOrder = []struct {
	cmd  Command
	desc string
}{
	{CommandSelect, "open"},
	{CommandAdd, "add"},
	{CommandEdit, "edit"},
	{CommandRemove, "remove"},
	{CommandBack, "back"},
	{CommandHelp, "help"},
	{CommandQuit, "quit"},
}

// Bindings describes the keymap for bubbles' help view. Movement keys are
// left out to keep the line short.
func (k Keymap) Bindings() []key.Binding {
	var out []key.Binding
	for _, h := range helpOrder {
		keys := k.Keys(h.cmd)
		if len(keys) == 0 {
			continue
		}
		out = append(out, key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), h.desc),
		))
	}
	return out
}

func movementKeys(k Keymap) Keymap {
	return k.
		Bind(CommandMoveUp, "up", "k").
		Bind(CommandMoveDown, "down", "j").
		Bind(CommandMoveTop, "home", "g").
		Bind(CommandMoveBottom, "end", "G")
}

// SelectKeymap is installed on the journal picker.
func SelectKeymap() Keymap {
	return movementKeys(NewKeymap()).
		Bind(CommandSelect, "enter").
		Bind(CommandAdd, "a").
		Bind(CommandEdit, "e").
		Bind(CommandRemove, "r").
		Bind(CommandHelp, "h").
		Bind(CommandQuit, "q", "ctrl+c")
}

// JournalKeymap is installed on a journal's note list.
func JournalKeymap() Keymap {
	return movementKeys(NewKeymap()).
		Bind(CommandAdd, "a").
		Bind(CommandRemove, "r").
		Bind(CommandEdit, "e").
		Bind(CommandHelp, "h").
		Bind(CommandBack, "b", "esc").
		Bind(CommandQuit, "q", "ctrl+c")
}

// KeymapFor returns the keymap for kind.
func KeymapFor(kind Kind) Keymap {
	switch kind {
	case KindJournal:
		return JournalKeymap()
	default:
		return SelectKeymap()
	}
}

// sortKeys puts single characters first so help reads "q" before "ctrl+c".
func sortKeys(keys []string) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if (len(a) == 1) != (len(b) == 1) {
			return len(a) == 1
		}
		return a < b
	})
}
