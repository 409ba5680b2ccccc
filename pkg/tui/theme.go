package tui

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the menu screen.
type Theme struct {
	Menu   MenuTheme
	Footer FooterTheme
	Prompt PromptTheme
}

// MenuTheme styles the title and option rows.
type MenuTheme struct {
	Title     lipgloss.Style
	Option    lipgloss.Style
	Selected  lipgloss.Style
	Indicator lipgloss.Style
	Empty     lipgloss.Style
}

// FooterTheme groups styles used below the list.
type FooterTheme struct {
	Status lipgloss.Style
	Error  lipgloss.Style
}

// PromptTheme frames the text prompt.
type PromptTheme struct {
	Frame lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Menu: MenuTheme{
			Title:     lipgloss.NewStyle().Bold(true),
			Option:    lipgloss.NewStyle(),
			Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Empty:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		},
		Footer: FooterTheme{
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		},
		Prompt: PromptTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
		},
	}
}
