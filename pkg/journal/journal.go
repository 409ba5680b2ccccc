// Package journal defines the in-memory journal collection and the mutations
// that keep it consistent.
package journal

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Placeholder is the note stored in a journal that has no real content, so the
// journal always has a row to render.
const Placeholder = ""

// Unnamed holds the notes of journals stored under a blank name.
const Unnamed = "UNNAMED"

var (
	// ErrNotFound is returned when a journal name is not present.
	ErrNotFound = errors.New("journal: not found")
	// ErrExists is returned when a journal would be created or renamed onto a
	// name that is already taken.
	ErrExists = errors.New("journal: already exists")
	// ErrEmptyName is returned for names that are blank after trimming.
	ErrEmptyName = errors.New("journal: name required")
	// ErrIndex is returned when a note position is out of range.
	ErrIndex = errors.New("journal: note index out of range")
)

// Collection maps an uppercase journal name to its ordered notes. Every journal
// holds at least one note.
type Collection map[string][]string

// NormalizeName trims and uppercases a journal name.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Names returns the journal names sorted alphabetically.
func (c Collection) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup resolves name case-insensitively and returns the stored key.
func (c Collection) Lookup(name string) (string, bool) {
	key := NormalizeName(name)
	if key == "" {
		return "", false
	}
	_, ok := c[key]
	return key, ok
}

// Notes returns a copy of the notes for the named journal.
func (c Collection) Notes(name string) ([]string, error) {
	key, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, NormalizeName(name))
	}
	return append([]string(nil), c[key]...), nil
}

// Create adds a journal holding only the placeholder note and returns its
// normalized name.
func (c Collection) Create(name string) (string, error) {
	key := NormalizeName(name)
	if key == "" {
		return "", ErrEmptyName
	}
	if _, ok := c[key]; ok {
		return key, fmt.Errorf("%w: %q", ErrExists, key)
	}
	c[key] = []string{Placeholder}
	return key, nil
}

// Remove deletes the named journal and all of its notes.
func (c Collection) Remove(name string) error {
	key, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, NormalizeName(name))
	}
	delete(c, key)
	return nil
}

// Rename moves the notes of from onto a new normalized name.
func (c Collection) Rename(from, to string) (string, error) {
	src, ok := c.Lookup(from)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, NormalizeName(from))
	}
	dst := NormalizeName(to)
	if dst == "" {
		return "", ErrEmptyName
	}
	if dst == src {
		return dst, nil
	}
	if _, ok := c[dst]; ok {
		return "", fmt.Errorf("%w: %q", ErrExists, dst)
	}
	c[dst] = c[src]
	delete(c, src)
	return dst, nil
}

// AddNote appends note to the named journal.
func (c Collection) AddNote(name, note string) error {
	key, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, NormalizeName(name))
	}
	c[key] = append(c[key], note)
	return nil
}

// EditNote replaces the note at index.
func (c Collection) EditNote(name string, index int, note string) error {
	key, ok := c.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, NormalizeName(name))
	}
	notes := c[key]
	if index < 0 || index >= len(notes) {
		return fmt.Errorf("%w: %d", ErrIndex, index)
	}
	notes[index] = note
	return nil
}

// RemoveNote deletes the note at index. It reports whether the journal was
// emptied by the removal; in that case the placeholder takes its place.
func (c Collection) RemoveNote(name string, index int) (bool, error) {
	key, ok := c.Lookup(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNotFound, NormalizeName(name))
	}
	notes := c[key]
	if index < 0 || index >= len(notes) {
		return false, fmt.Errorf("%w: %d", ErrIndex, index)
	}
	notes = append(notes[:index:index], notes[index+1:]...)
	if len(notes) == 0 {
		c[key] = []string{Placeholder}
		return true, nil
	}
	c[key] = notes
	return false, nil
}

// BlankNames counts the journals whose names are empty after normalization.
func (c Collection) BlankNames() int {
	n := 0
	for name := range c {
		if NormalizeName(name) == "" {
			n++
		}
	}
	return n
}

// Repair restores the collection invariants on data read from disk: names are
// uppercased and journals without notes get the placeholder. Journals whose
// names collide after normalization have their notes concatenated in name
// order. Notes under a blank name are kept in the Unnamed journal.
func (c Collection) Repair() Collection {
	out := make(Collection, len(c))
	raw := make([]string, 0, len(c))
	for name := range c {
		raw = append(raw, name)
	}
	sort.Strings(raw)
	for _, name := range raw {
		key := NormalizeName(name)
		if key == "" {
			key = Unnamed
		}
		out[key] = append(out[key], c[name]...)
	}
	for key, notes := range out {
		if len(notes) == 0 {
			out[key] = []string{Placeholder}
		}
	}
	return out
}

// Clone returns a deep copy.
func (c Collection) Clone() Collection {
	out := make(Collection, len(c))
	for name, notes := range c {
		out[name] = append([]string(nil), notes...)
	}
	return out
}
