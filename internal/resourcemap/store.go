// Package resourcemap keeps the name-to-container lookup cache built by a
// previous scan. The map is held by an explicit Store value; nothing in the
// package is global.
package resourcemap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/deploymenttheory/go-assetprobe/internal/types"
)

// ErrCorrupt is returned when a map file cannot be decoded.
var ErrCorrupt = errors.New("corrupt resource map")

// Entry locates one named asset.
type Entry struct {
	Name      string `cbor:"name" json:"name" yaml:"name"`
	Container string `cbor:"container" json:"container" yaml:"container"`
	Source    string `cbor:"source" json:"source" yaml:"source"`
	PathID    int64  `cbor:"path_id" json:"path_id" yaml:"path_id"`
	Type      string `cbor:"type" json:"type" yaml:"type"`
}

// Map is the persisted form of a resource map.
type Map struct {
	Publisher types.PublisherID `cbor:"publisher" json:"publisher" yaml:"publisher"`
	Entries   []Entry           `cbor:"entries" json:"entries" yaml:"entries"`
}

func emptyMap() *Map {
	return &Map{Publisher: types.PublisherNormal, Entries: []Entry{}}
}

// Store holds the current resource map. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	m      *Map
	byName map[string]int
}

// NewStore returns a store holding an empty map for the Normal publisher.
func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Load replaces the current map with the one in path. An empty path leaves
// the current map in place.
func (s *Store) Load(path string) (*Map, error) {
	if path == "" {
		return s.Current(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open resource map: %w", err)
	}
	defer f.Close()

	m, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if !m.Publisher.IsValid() {
		return nil, fmt.Errorf("%s: %w: %d", path, types.ErrUnsupportedPublisher, m.Publisher)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(m)
	return copyMap(m), nil
}

// Save writes m to path, creating parent directories as needed.
func (s *Store) Save(path string, m *Map) error {
	if path == "" {
		return fmt.Errorf("resource map path cannot be empty")
	}
	if m == nil {
		m = s.Current()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create resource map directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create resource map: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := encode(tmp, m); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write resource map: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// Clear resets the store to an empty map and returns it.
func (s *Store) Clear() *Map {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(emptyMap())
	return copyMap(s.m)
}

// Replace installs m as the current map.
func (s *Store) Replace(m *Map) {
	if m == nil {
		m = emptyMap()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(copyMap(m))
}

// Current returns a copy of the current map.
func (s *Store) Current() *Map {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMap(s.m)
}

// Entries returns a copy of the current entries.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Entry{}, s.m.Entries...)
}

// Lookup returns the first entry named name.
func (s *Store) Lookup(name string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byName[name]
	if !ok {
		return Entry{}, false
	}
	return s.m.Entries[i], true
}

// set must be called with mu held for writing.
func (s *Store) set(m *Map) {
	if m.Entries == nil {
		m.Entries = []Entry{}
	}
	s.m = m
	s.byName = make(map[string]int, len(m.Entries))
	for i, e := range m.Entries {
		if _, dup := s.byName[e.Name]; !dup {
			s.byName[e.Name] = i
		}
	}
}

func copyMap(m *Map) *Map {
	return &Map{Publisher: m.Publisher, Entries: append([]Entry{}, m.Entries...)}
}
