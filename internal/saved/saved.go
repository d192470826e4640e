package saved

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/kv"
	"github.com/five82/pkgscout/internal/logging"
)

// Key is the persistence key for the saved state.
const Key = "pkgscout.saved.v1"

// EventChanged names the broadcast fired after every saved-state mutation.
const EventChanged = "saved-state-changed"

// List selects one of the saved lists.
type List string

const (
	Favorites List = "favorites"
	Watchlist List = "watchlist"
)

// ParseList converts user input such as "fav" or "watchlist" into a List.
func ParseList(s string) (List, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "favorites", "favorite", "fav", "favs":
		return Favorites, nil
	case "watchlist", "watch":
		return Watchlist, nil
	default:
		return "", fmt.Errorf("unknown list %q", s)
	}
}

// State is the persisted record. Each list is most-recently-toggled first
// and never holds the same name twice.
type State struct {
	Favorites []string `json:"favorites"`
	Watchlist []string `json:"watchlist"`
}

// Names returns a copy of the selected list.
func (s State) Names(list List) []string {
	switch list {
	case Favorites:
		return cloneNames(s.Favorites)
	case Watchlist:
		return cloneNames(s.Watchlist)
	default:
		return []string{}
	}
}

// Contains reports whether name is in list.
func (s State) Contains(list List, name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range s.Names(list) {
		if n == name {
			return true
		}
	}
	return false
}

func (s State) clone() State {
	return State{Favorites: cloneNames(s.Favorites), Watchlist: cloneNames(s.Watchlist)}
}

func (s State) with(list List, names []string) State {
	next := s.clone()
	switch list {
	case Favorites:
		next.Favorites = names
	case Watchlist:
		next.Watchlist = names
	}
	return next
}

// ChangeEvent is delivered to subscribers after a mutation is persisted.
type ChangeEvent struct {
	Name  string
	List  List
	State State
}

// Listener receives change events. Listeners run while the store holds its
// write lock and must not call Toggle, Remove or Clear.
type Listener func(ChangeEvent)

// Store owns the saved state and its subscriber list.
type Store struct {
	kv     *kv.Store
	logger *zap.Logger

	// writeMu orders each persisted write with its broadcast.
	writeMu sync.Mutex

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
	order     []int
}

// NewStore returns a Store persisting into s. s may be nil or unavailable.
func NewStore(s *kv.Store, logger *zap.Logger) *Store {
	return &Store{
		kv:        s,
		logger:    logging.OrNop(logger).Named("saved"),
		listeners: make(map[int]Listener),
	}
}

// State returns the persisted state, both lists empty by default.
func (s *Store) State() State {
	return normalize(kv.Read(s.kv, Key, State{}))
}

// IsSaved reports whether name is present in list.
func (s *Store) IsSaved(list List, name string) bool {
	return s.State().Contains(list, name)
}

// Toggle removes name from list when present, otherwise inserts it at the
// front. Blank names are ignored.
func (s *Store) Toggle(list List, name string) State {
	name = strings.TrimSpace(name)
	if name == "" || !validList(list) {
		return s.State()
	}
	return s.mutate(list, func(names []string) []string {
		if contains(names, name) {
			return without(names, name)
		}
		return append([]string{name}, names...)
	})
}

// Remove drops name from list if present.
func (s *Store) Remove(list List, name string) State {
	name = strings.TrimSpace(name)
	if name == "" || !validList(list) {
		return s.State()
	}
	return s.mutate(list, func(names []string) []string {
		return without(names, name)
	})
}

// Clear empties list.
func (s *Store) Clear(list List) State {
	if !validList(list) {
		return s.State()
	}
	return s.mutate(list, func([]string) []string {
		return []string{}
	})
}

// Subscribe registers fn for change events and returns a function that
// removes it. Events fired before Subscribe are not replayed.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.order = append(s.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.listeners, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

func (s *Store) mutate(list List, fn func([]string) []string) State {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := kv.Update(s.kv, Key, State{}, func(current State) State {
		current = normalize(current)
		return current.with(list, dedupe(fn(current.Names(list))))
	})
	next = normalize(next)
	s.broadcast(ChangeEvent{Name: EventChanged, List: list, State: next})
	return next
}

// broadcast delivers ev synchronously to the listeners registered right now.
func (s *Store) broadcast(ev ChangeEvent) {
	s.mu.Lock()
	listeners := make([]Listener, 0, len(s.order))
	for _, id := range s.order {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		s.deliver(fn, ev)
	}
}

func (s *Store) deliver(fn Listener, ev ChangeEvent) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("listener panic", zap.String("event", ev.Name), zap.Any("panic", r))
		}
	}()
	ev.State = ev.State.clone()
	fn(ev)
}

func validList(list List) bool {
	return list == Favorites || list == Watchlist
}

func normalize(s State) State {
	return State{Favorites: dedupe(s.Favorites), Watchlist: dedupe(s.Watchlist)}
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func without(names []string, name string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

func cloneNames(names []string) []string {
	dup := make([]string, len(names))
	copy(dup, names)
	return dup
}
