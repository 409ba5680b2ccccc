// Package prompt is the multi-line text editor jot opens to capture a journal
// name or a note.
package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/textarea"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// KeyMap holds the keys that close the prompt. Every other key is passed to
// the text area.
type KeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// Keys is the default prompt keymap.
var Keys = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("ctrl+g", "ctrl+s"),
		key.WithHelp("ctrl+g", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

// Outcome reports how far the user got with the prompt.
type Outcome int

const (
	// OutcomeOpen is still accepting input.
	OutcomeOpen Outcome = iota
	// OutcomeSubmitted was saved by the user.
	OutcomeSubmitted
	// OutcomeCancelled was abandoned; Value should be ignored.
	OutcomeCancelled
)

const (
	defaultWidth = 60
	height       = 6
)

// Model wraps a textarea with a label and submit/cancel handling.
type Model struct {
	label   string
	area    textarea.Model
	outcome Outcome
	focus   tea.Cmd
}

// New returns a focused prompt pre-filled with initial.
func New(label, initial string, width int) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = "┃ "
	ta.CharLimit = 0
	ta.SetHeight(height)
	ta.SetWidth(clampWidth(width))
	ta.SetValue(initial)
	focus := ta.Focus()
	return Model{label: label, area: ta, focus: focus}
}

func clampWidth(width int) int {
	if width <= 0 {
		return defaultWidth
	}
	if width > 4 {
		return width - 2
	}
	return width
}

// Init starts the cursor.
func (m Model) Init() tea.Cmd {
	return m.focus
}

// SetWidth resizes the text area to the terminal.
func (m *Model) SetWidth(width int) {
	m.area.SetWidth(clampWidth(width))
}

// Update handles a message while the prompt is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.outcome != OutcomeOpen {
		return m, nil
	}
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch {
		case key.Matches(msg, Keys.Submit):
			m.outcome = OutcomeSubmitted
			m.Close()
			return m, nil
		case key.Matches(msg, Keys.Cancel):
			m.outcome = OutcomeCancelled
			m.Close()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

// View renders the label above the text area.
func (m Model) View() string {
	return m.label + "  (" + Keys.Submit.Help().Key + " to save, " + Keys.Cancel.Help().Key + " to cancel)\n\n" + m.area.View()
}

// Label is the heading shown above the editor.
func (m Model) Label() string { return m.label }

// Outcome reports whether the prompt is still open.
func (m Model) Outcome() Outcome { return m.outcome }

// Value is the normalized text entered so far.
func (m Model) Value() string {
	return Normalize(m.area.Value())
}

// Close releases the text area. It is safe to call more than once.
func (m *Model) Close() {
	m.area.Blur()
}

// Normalize drops lines that hold only whitespace, trims trailing space from
// the rest and strips the result.
func Normalize(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
