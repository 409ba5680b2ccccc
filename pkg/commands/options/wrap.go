package options

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// Wrap80 collapses whitespace in text and wraps it for cobra help output.
func Wrap80(text string) string {
	return Wrap(text, 80)
}

func Wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}
	return wordwrap.String(strings.Join(words, " "), width)
}
