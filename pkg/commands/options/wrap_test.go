package options

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	got := Wrap("one  two\nthree four", 9)
	want := "one two\nthree\nfour"
	if got != want {
		t.Fatalf("Wrap = %q, want %q", got, want)
	}
	for _, line := range strings.Split(Wrap80(strings.Repeat("word ", 40)), "\n") {
		if len(line) > 80 {
			t.Fatalf("line longer than 80: %q", line)
		}
	}
}
