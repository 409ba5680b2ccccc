// Package tui renders the navigation controller with Bubble Tea and hosts the
// text prompt.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/help"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/jot/pkg/nav"
	"tableflip.dev/jot/pkg/prompt"
	"tableflip.dev/jot/pkg/store"
)

const (
	indicator = "> "
	newline   = " ↵ "
	// rows taken by the blank line under the title plus status and help.
	chromeRows = 4
)

type storeChangedMsg struct{}

// Model is the Bubble Tea model for one interactive session.
type Model struct {
	ctrl  *nav.Controller
	theme Theme
	help  help.Model
	watch <-chan store.Event

	prompt    prompt.Model
	prompting bool
	// stale is set when the store changed while the prompt was open.
	stale bool

	width  int
	height int

	err      error
	quitting bool
}

// New returns a model over a started controller. watch may be nil.
func New(ctrl *nav.Controller, watch <-chan store.Event) Model {
	return Model{
		ctrl:  ctrl,
		theme: DefaultTheme(),
		help:  help.New(),
		watch: watch,
	}
}

// Init subscribes to store changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.watch)
}

// Err is the failure that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func waitForChange(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.prompting {
			m.prompt.SetWidth(m.width)
		}
		return m, nil
	case storeChangedMsg:
		if m.prompting {
			m.stale = true
		} else if err := m.ctrl.Reload(); err != nil {
			return m.fail(err)
		}
		return m, waitForChange(m.watch)
	case tea.KeyPressMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.handleKey(msg)
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	eff, err := m.ctrl.Handle(msg.String())
	if err != nil {
		return m.fail(err)
	}
	switch eff {
	case nav.EffectQuit:
		m.quitting = true
		return m, tea.Quit
	case nav.EffectPrompt:
		p, _ := m.ctrl.Pending()
		m.prompt = prompt.New(p.Label, p.Initial, m.width)
		m.prompting = true
		return m, m.prompt.Init()
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)

	switch m.prompt.Outcome() {
	case prompt.OutcomeSubmitted:
		m.prompting = false
		m.stale = false
		if err := m.ctrl.Submit(m.prompt.Value()); err != nil {
			return m.fail(err)
		}
	case prompt.OutcomeCancelled:
		m.prompting = false
		m.ctrl.Cancel()
		if m.stale {
			m.stale = false
			if err := m.ctrl.Reload(); err != nil {
				return m.fail(err)
			}
		}
	}
	return m, cmd
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	if m.prompting {
		m.prompt.Close()
		m.prompting = false
	}
	return m, tea.Quit
}

// View renders the active menu, or the prompt while one is open.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.prompting {
		return m.theme.Prompt.Frame.Render(m.prompt.View()) + "\n"
	}

	mn := m.ctrl.Menu()
	var b strings.Builder
	if !mn.Hidden() {
		title := mn.Title()
		b.WriteString(m.theme.Menu.Title.Render(title))
		b.WriteString("\n\n")

		options := mn.Options()
		if len(options) == 0 {
			b.WriteString(m.theme.Menu.Empty.Render("  nothing here yet, press a to add"))
			b.WriteString("\n")
		}
		start, end := m.window(len(options), mn.Index(), strings.Count(title, "\n")+1)
		for i := start; i < end; i++ {
			b.WriteString(m.row(options[i], i == mn.Index()))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if status := m.ctrl.Status(); status != "" {
		b.WriteString(m.theme.Footer.Status.Render(status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(mn.Keymap().Bindings()))
	return b.String()
}

// window picks the slice of options that fits the terminal with the cursor in
// view.
func (m Model) window(n, index, titleRows int) (int, int) {
	rows := m.height - titleRows - chromeRows
	if m.height == 0 || rows <= 0 || n <= rows {
		return 0, n
	}
	start := 0
	if index >= rows {
		start = index - rows + 1
	}
	return start, start + rows
}

func (m Model) row(option string, selected bool) string {
	label := strings.ReplaceAll(option, "\n", newline)
	if m.width > len(indicator) {
		label = truncate.StringWithTail(label, uint(m.width-len(indicator)), "…")
	}
	if selected {
		return m.theme.Menu.Indicator.Render(indicator) + m.theme.Menu.Selected.Render(label)
	}
	return strings.Repeat(" ", len(indicator)) + m.theme.Menu.Option.Render(label)
}
