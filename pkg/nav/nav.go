// Package nav drives jot's two menus. A Controller owns the active menu,
// executes key commands against the store and tracks which journal is open.
// It knows nothing about the terminal; the tui package renders its state.
package nav

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"tableflip.dev/jot/pkg/journal"
	"tableflip.dev/jot/pkg/menu"
)

// ErrJournalNotFound is returned when jot is started on a journal that does
// not exist.
var ErrJournalNotFound = fmt.Errorf("nav: %w", journal.ErrNotFound)

// Store is the persistence the controller reads fresh and writes back on
// every mutating command.
type Store interface {
	Load() (journal.Collection, error)
	Save(journal.Collection) error
}

// State is the controller's position in the navigation state machine.
type State int

const (
	// StateSelecting shows the journal picker.
	StateSelecting State = iota
	// StateActingOnJournal shows the notes of one journal.
	StateActingOnJournal
	// StateDone is terminal.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateActingOnJournal:
		return "acting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Effect tells the caller what to do after a key was handled.
type Effect int

const (
	// EffectNone needs nothing beyond a redraw.
	EffectNone Effect = iota
	// EffectPrompt asks the caller to open a text prompt described by Pending.
	EffectPrompt
	// EffectQuit ends the session.
	EffectQuit
)

// Pending describes a command waiting for text input.
type Pending struct {
	Command menu.Command
	Label   string
	Initial string
	// Index is the note position for note edits.
	Index int
	// Target is the journal the input applies to.
	Target string
}

// Controller is the navigation state machine.
type Controller struct {
	store Store
	log   zerolog.Logger

	state   State
	menu    *menu.Menu
	journal string
	pending *Pending
	status  string
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger sets the logger for transitions and mutations.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l.With().Str("component", "nav").Logger()
	}
}

// New returns a controller over store. Call Start or StartIn before use.
func New(store Store, opts ...Option) *Controller {
	c := &Controller{
		store: store,
		log:   zerolog.Nop(),
		menu:  menu.New(menu.KindSelect, menu.SelectTitle, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start loads the store and shows the journal picker.
func (c *Controller) Start() error {
	coll, err := c.load()
	if err != nil {
		return err
	}
	c.showSelect(coll, "")
	return nil
}

// StartIn loads the store and opens name directly. A name that is not in the
// store fails with ErrJournalNotFound and leaves no menu open.
func (c *Controller) StartIn(name string) error {
	coll, err := c.load()
	if err != nil {
		return err
	}
	key, ok := coll.Lookup(name)
	if !ok {
		c.state = StateDone
		return fmt.Errorf("%w: %q", ErrJournalNotFound, journal.NormalizeName(name))
	}
	c.showJournal(coll, key)
	return nil
}

// State is where the controller is in the navigation state machine.
func (c *Controller) State() State { return c.state }

// Menu is the active menu.
func (c *Controller) Menu() *menu.Menu { return c.menu }

// Journal is the open journal name, empty while selecting.
func (c *Controller) Journal() string { return c.journal }

// Status is the outcome of the last command, for display.
func (c *Controller) Status() string { return c.status }

// Pending returns the command waiting for prompt input, if any.
func (c *Controller) Pending() (Pending, bool) {
	if c.pending == nil {
		return Pending{}, false
	}
	return *c.pending, true
}

// Handle runs the command bound to key in the active menu. The returned error
// is a store failure; the session cannot continue after one.
func (c *Controller) Handle(key string) (Effect, error) {
	if c.state == StateDone {
		return EffectQuit, nil
	}
	if c.pending != nil {
		return EffectPrompt, nil
	}

	cmd := c.menu.Resolve(key)
	c.log.Debug().Str("key", key).Stringer("command", cmd).Stringer("state", c.state).Msg("handle")

	switch cmd {
	case menu.CommandNone:
		return EffectNone, nil
	case menu.CommandQuit:
		c.state = StateDone
		return EffectQuit, nil
	case menu.CommandHelp:
		c.menu.ShowHelp()
		return EffectNone, nil
	case menu.CommandMoveUp, menu.CommandMoveDown, menu.CommandMoveTop, menu.CommandMoveBottom:
		c.menu.Move(cmd)
		return EffectNone, nil
	}

	c.status = ""
	if c.state == StateActingOnJournal {
		return c.handleJournal(cmd)
	}
	return c.handleSelect(cmd)
}

func (c *Controller) handleSelect(cmd menu.Command) (Effect, error) {
	if cmd == menu.CommandAdd {
		return c.prompt(Pending{Command: cmd, Label: "New journal name"}), nil
	}

	name, ok := c.menu.Selected()
	if !ok && cmd.Positional() {
		return EffectNone, nil
	}

	switch cmd {
	case menu.CommandSelect:
		coll, err := c.load()
		if err != nil {
			return EffectNone, err
		}
		if _, ok := coll[name]; !ok {
			c.status = fmt.Sprintf("No journal named '%s'", name)
			c.showSelect(coll, "")
			return EffectNone, nil
		}
		c.showJournal(coll, name)
	case menu.CommandEdit:
		return c.prompt(Pending{Command: cmd, Label: "Rename journal", Initial: name, Target: name}), nil
	case menu.CommandRemove:
		coll, err := c.mutate(func(coll journal.Collection) error {
			return coll.Remove(name)
		})
		if err != nil || coll == nil {
			return EffectNone, err
		}
		c.status = fmt.Sprintf("Removed %s", name)
		c.showSelect(coll, "")
	}
	return EffectNone, nil
}

func (c *Controller) handleJournal(cmd menu.Command) (Effect, error) {
	if cmd == menu.CommandAdd {
		return c.prompt(Pending{Command: cmd, Label: "New note", Target: c.journal}), nil
	}

	note, ok := c.menu.Selected()
	if !ok && cmd.Positional() {
		return EffectNone, c.back()
	}
	index := c.menu.Index()

	switch cmd {
	case menu.CommandBack:
		return EffectNone, c.back()
	case menu.CommandEdit:
		return c.prompt(Pending{Command: cmd, Label: "Edit note", Initial: note, Index: index, Target: c.journal}), nil
	case menu.CommandRemove:
		var emptied bool
		coll, err := c.mutate(func(coll journal.Collection) error {
			var err error
			emptied, err = coll.RemoveNote(c.journal, index)
			return err
		})
		if err != nil || coll == nil {
			return EffectNone, err
		}
		if emptied {
			name := c.journal
			c.showSelect(coll, name)
			c.status = fmt.Sprintf("%s is empty", name)
			return EffectNone, nil
		}
		c.status = "Removed"
		c.menu.SetOptions(coll[c.journal])
	}
	return EffectNone, nil
}

// Submit completes the pending command with text from the prompt.
func (c *Controller) Submit(text string) error {
	if c.pending == nil {
		return nil
	}
	p := *c.pending
	c.pending = nil
	c.menu.Show()

	switch {
	case c.state == StateSelecting && p.Command == menu.CommandAdd:
		return c.addJournal(text)
	case c.state == StateSelecting && p.Command == menu.CommandEdit:
		return c.renameJournal(p.Target, text)
	case c.state == StateActingOnJournal && p.Command == menu.CommandAdd:
		return c.addNote(text)
	case c.state == StateActingOnJournal && p.Command == menu.CommandEdit:
		return c.editNote(p.Index, text)
	}
	return nil
}

// Cancel abandons the pending command without touching the store.
func (c *Controller) Cancel() {
	if c.pending == nil {
		return
	}
	c.log.Debug().Stringer("command", c.pending.Command).Msg("prompt cancelled")
	c.pending = nil
	c.menu.Show()
	c.status = "Cancelled"
}

// Reload refreshes the visible options from the store, keeping the cursor on
// the same option when it still exists.
func (c *Controller) Reload() error {
	if c.state == StateDone {
		return nil
	}
	coll, err := c.load()
	if err != nil {
		return err
	}
	if c.state == StateSelecting {
		current, _ := c.menu.Selected()
		c.refreshSelect(coll, current)
		return nil
	}
	notes, ok := coll[c.journal]
	if !ok {
		name := c.journal
		c.showSelect(coll, "")
		c.status = fmt.Sprintf("%s was removed", name)
		return nil
	}
	c.menu.SetOptions(notes)
	return nil
}

func (c *Controller) addJournal(text string) error {
	if journal.NormalizeName(text) == "" {
		c.status = "Nothing added"
		return nil
	}
	var key string
	coll, err := c.mutate(func(coll journal.Collection) error {
		var err error
		key, err = coll.Create(text)
		return err
	})
	if err != nil {
		if errors.Is(err, journal.ErrExists) {
			c.status = fmt.Sprintf("%s already exists", key)
			c.refreshSelect(coll, key)
			return nil
		}
		return err
	}
	c.status = fmt.Sprintf("Added %s", key)
	c.refreshSelect(coll, key)
	return nil
}

func (c *Controller) renameJournal(from, to string) error {
	if journal.NormalizeName(to) == "" {
		c.status = "Nothing renamed"
		return nil
	}
	var key string
	coll, err := c.mutate(func(coll journal.Collection) error {
		var err error
		key, err = coll.Rename(from, to)
		return err
	})
	if err != nil {
		if errors.Is(err, journal.ErrExists) {
			c.status = fmt.Sprintf("%s already exists", journal.NormalizeName(to))
			c.refreshSelect(coll, from)
			return nil
		}
		return err
	}
	if coll == nil {
		return nil
	}
	c.status = fmt.Sprintf("Renamed %s to %s", from, key)
	c.refreshSelect(coll, key)
	return nil
}

func (c *Controller) addNote(text string) error {
	coll, err := c.mutate(func(coll journal.Collection) error {
		return coll.AddNote(c.journal, text)
	})
	if err != nil || coll == nil {
		return err
	}
	c.status = "Added"
	c.menu.SetOptions(coll[c.journal])
	c.menu.MoveBottom()
	return nil
}

func (c *Controller) editNote(index int, text string) error {
	coll, err := c.mutate(func(coll journal.Collection) error {
		return coll.EditNote(c.journal, index, text)
	})
	if err != nil || coll == nil {
		return err
	}
	c.status = "Edited"
	c.menu.SetOptions(coll[c.journal])
	c.menu.Select(index)
	return nil
}

// mutate reads the store, applies fn and writes the result back. Store
// failures are returned. When fn reports that its target vanished from the
// store, the view is resynchronized and mutate returns a nil collection and
// nil error. Any other fn error is returned with the freshly read collection.
func (c *Controller) mutate(fn func(journal.Collection) error) (journal.Collection, error) {
	coll, err := c.load()
	if err != nil {
		return nil, err
	}
	if err := fn(coll); err != nil {
		if errors.Is(err, journal.ErrNotFound) || errors.Is(err, journal.ErrIndex) {
			c.log.Warn().Err(err).Msg("target changed underneath the menu")
			c.status = "Journal changed on disk, reloaded"
			if err := c.Reload(); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return coll, err
	}
	if err := c.store.Save(coll); err != nil {
		return nil, fmt.Errorf("nav: save: %w", err)
	}
	return coll, nil
}

func (c *Controller) load() (journal.Collection, error) {
	coll, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("nav: load: %w", err)
	}
	return coll, nil
}

func (c *Controller) prompt(p Pending) Effect {
	c.pending = &p
	c.menu.Hide()
	c.log.Debug().Stringer("command", p.Command).Str("target", p.Target).Msg("prompt")
	return EffectPrompt
}

func (c *Controller) back() error {
	coll, err := c.load()
	if err != nil {
		return err
	}
	c.showSelect(coll, c.journal)
	return nil
}

func (c *Controller) showSelect(coll journal.Collection, cursor string) {
	c.state = StateSelecting
	c.journal = ""
	c.menu = menu.New(menu.KindSelect, menu.SelectTitle, coll.Names())
	if cursor != "" {
		c.menu.SelectOption(cursor)
	}
	c.log.Debug().Int("journals", len(coll)).Msg("selecting")
}

func (c *Controller) refreshSelect(coll journal.Collection, cursor string) {
	c.menu.SetOptions(coll.Names())
	if cursor != "" {
		c.menu.SelectOption(cursor)
	}
}

func (c *Controller) showJournal(coll journal.Collection, name string) {
	c.state = StateActingOnJournal
	c.journal = name
	c.menu = menu.New(menu.KindJournal, menu.JournalTitle(name), coll[name])
	c.log.Debug().Str("journal", name).Int("notes", len(coll[name])).Msg("acting on journal")
}
