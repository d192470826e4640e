// Package recent keeps the bounded, most-recent-first list of queries the
// user has searched for.
package recent

import (
	"strings"

	"github.com/five82/pkgscout/internal/kv"
)

const (
	// Key is the persistence key for the recent-search list.
	Key = "pkgscout.recent-searches.v1"

	// MaxEntries bounds the list length.
	MaxEntries = 10
)

// Store mutates the recent-search list through the kv layer.
type Store struct {
	kv *kv.Store
}

// NewStore returns a Store persisting into s. s may be nil or unavailable.
func NewStore(s *kv.Store) *Store {
	return &Store{kv: s}
}

// Get returns the persisted list, most recent first.
func (s *Store) Get() []string {
	return normalize(kv.Read(s.kv, Key, []string{}))
}

// Add records term at the front of the list. Blank terms are ignored.
// The updated list is returned.
func (s *Store) Add(term string) []string {
	trimmed := strings.TrimSpace(term)
	if trimmed == "" {
		return s.Get()
	}
	return kv.Update(s.kv, Key, []string{}, func(current []string) []string {
		next := make([]string, 0, MaxEntries)
		next = append(next, trimmed)
		for _, existing := range normalize(current) {
			if existing == trimmed {
				continue
			}
			if len(next) == MaxEntries {
				break
			}
			next = append(next, existing)
		}
		return next
	})
}

// Clear persists an empty list.
func (s *Store) Clear() {
	s.kv.Write(Key, []string{})
}

// normalize repairs payloads written by hand or by older builds: blanks and
// duplicates are dropped and the list is bounded.
func normalize(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}
