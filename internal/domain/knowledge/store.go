// Package knowledge holds the fixed course knowledge base.
package knowledge

import "fmt"

// Store is a read-only, ordered set of knowledge entries.
// Iteration order is declaration order; the keyword fallback relies on it for tie-breaks.
type Store struct {
	entries []Entry
	index   map[string]int
}

// New builds a Store from entries in declaration order. Keys must be unique.
func New(entries ...Entry) (*Store, error) {
	s := &Store{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if e.Key() == "" {
			return nil, fmt.Errorf("knowledge entry without key")
		}
		if _, dup := s.index[e.Key()]; dup {
			return nil, fmt.Errorf("duplicate knowledge entry: %s", e.Key())
		}
		s.index[e.Key()] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	return s, nil
}

// MustNew calls New and panics on error.
func MustNew(entries ...Entry) *Store {
	s, err := New(entries...)
	if err != nil {
		panic(err)
	}
	return s
}

// Entries returns all entries in declaration order.
func (s *Store) Entries() []Entry {
	cp := make([]Entry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

// Get looks up an entry by key.
func (s *Store) Get(key string) (Entry, bool) {
	i, ok := s.index[key]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }
