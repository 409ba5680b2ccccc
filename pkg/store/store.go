// Package store persists the journal collection as a single YAML document.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"tableflip.dev/jot/pkg/journal"
)

// Persistence is the load and save surface commands work against.
type Persistence interface {
	Load() (journal.Collection, error)
	Save(journal.Collection) error
}

var _ Persistence = (*Store)(nil)

// Store reads and writes the whole collection on every call. Writes go to a
// temporary file that is renamed over the target, so an interrupted save
// never leaves a truncated document behind.
type Store struct {
	path string
	key  string
	tmp  string
	d    *diskv.Diskv
	log  zerolog.Logger

	mu   sync.Mutex
	last []byte
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l.With().Str("component", "store").Logger()
	}
}

// Open builds a Store from cfg, resolving configuration when cfg is nil.
func Open(cfg Config, opts ...Option) (*Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	return New(cfg.Path(), opts...)
}

// New returns a Store for the file at path.
func New(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("store: path required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("store: resolve %q: %w", path, err)
	}
	dir, key := filepath.Split(abs)
	tmp := filepath.Join(dir, "."+key+".tmp")
	s := &Store{
		path: abs,
		key:  key,
		tmp:  tmp,
		log:  zerolog.Nop(),
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			TempDir:      tmp,
			CacheSizeMax: 0, // every Load goes to disk
			FilePerm:     0o600,
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path is the absolute location of the journal file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the collection from disk. A missing file is created empty and
// yields an empty collection.
func (s *Store) Load() (journal.Collection, error) {
	data, err := s.d.Read(s.key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("store: read %s: %w", s.path, err)
		}
		s.log.Debug().Str("path", s.path).Msg("creating empty journal file")
		if err := s.write(nil); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", s.path, err)
		}
		s.remember(nil)
		return journal.Collection{}, nil
	}

	raw, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("store: %s: %w", s.path, err)
	}
	if n := raw.BlankNames(); n > 0 {
		s.log.Warn().Str("path", s.path).Int("journals", n).Str("into", journal.Unnamed).
			Msg("journals with blank names moved")
	}
	s.remember(data)
	return raw.Repair(), nil
}

// Save overwrites the file with c.
func (s *Store) Save(c journal.Collection) error {
	data, err := Encode(c)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := s.write(data); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	s.remember(data)
	s.log.Debug().Str("path", s.path).Int("journals", len(c)).Msg("saved")
	return nil
}

// write replaces the file through diskv's temporary directory, then removes
// that directory. Remove fails harmlessly while another writer still uses it.
func (s *Store) write(data []byte) error {
	if err := s.d.WriteStream(s.key, bytes.NewReader(data), true); err != nil {
		return err
	}
	if err := os.Remove(s.tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Err(err).Str("dir", s.tmp).Msg("temp dir left in place")
	}
	return nil
}

func (s *Store) remember(data []byte) {
	s.mu.Lock()
	s.last = append(s.last[:0], data...)
	s.mu.Unlock()
}

// changedSinceLastIO reports whether the file differs from what this Store
// last read or wrote.
func (s *Store) changedSinceLastIO() bool {
	data, err := s.d.Read(s.key)
	if err != nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !bytes.Equal(data, s.last)
}

// Encode renders c as YAML.
func Encode(c journal.Collection) ([]byte, error) {
	if len(c) == 0 {
		return []byte("{}\n"), nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(4)
	if err := enc.Encode(map[string][]string(c)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses YAML produced by Encode (or written by hand). Content that is
// not a mapping of names to note lists is an error.
func Decode(data []byte) (journal.Collection, error) {
	raw, err := decode(data)
	if err != nil {
		return nil, err
	}
	return raw.Repair(), nil
}

func decode(data []byte) (journal.Collection, error) {
	raw := map[string][]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return journal.Collection(raw), nil
}
