// Package guide renders the user guide with Glamour.
package guide

import (
	"context"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
)

//go:embed guide.md
var guideMarkdown string

type Guide struct {
	// Style is a Glamour standard style such as "dark", "light" or "notty".
	Style string
	Width int
	Out   io.Writer
}

func (g *Guide) Do(ctx context.Context) error {
	out := g.Out
	if out == nil {
		out = color.Output
	}
	content, err := Render(g.Style, g.Width)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, content)
	return err
}

// Render returns the guide formatted for a terminal of the given width.
func Render(style string, width int) (string, error) {
	if style == "" {
		style = "dark"
	}
	if width < 20 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("guide: %w", err)
	}
	content, err := renderer.Render(strings.TrimSpace(guideMarkdown))
	if err != nil {
		return "", fmt.Errorf("guide: %w", err)
	}
	return content, nil
}
