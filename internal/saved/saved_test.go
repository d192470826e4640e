package saved

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/pkgscout/internal/kv"
)

func newStore() *Store {
	return NewStore(kv.New(kv.NewMemory(), nil), nil)
}

func TestToggle_AddsThenRemoves(t *testing.T) {
	s := newStore()

	st := s.Toggle(Favorites, "left-pad")
	assert.Equal(t, []string{"left-pad"}, st.Favorites)
	assert.True(t, s.IsSaved(Favorites, " left-pad "))

	st = s.Toggle(Favorites, "left-pad")
	assert.Equal(t, []string{}, st.Favorites)
	assert.False(t, s.IsSaved(Favorites, "left-pad"))
}

func TestToggle_InsertsAtFront(t *testing.T) {
	s := newStore()
	s.Toggle(Watchlist, "a")
	s.Toggle(Watchlist, "b")
	st := s.Toggle(Watchlist, "c")
	assert.Equal(t, []string{"c", "b", "a"}, st.Watchlist)
}

func TestToggle_BlankNameIgnored(t *testing.T) {
	s := newStore()
	fired := 0
	s.Subscribe(func(ChangeEvent) { fired++ })

	st := s.Toggle(Favorites, "   ")
	assert.Empty(t, st.Favorites)
	assert.Equal(t, 0, fired)
}

func TestListsAreIndependent(t *testing.T) {
	s := newStore()
	s.Toggle(Watchlist, "express")
	s.Toggle(Watchlist, "koa")

	before := s.State().Watchlist

	s.Toggle(Favorites, "react")
	s.Toggle(Favorites, "express")
	s.Remove(Favorites, "react")
	s.Clear(Favorites)

	assert.Equal(t, before, s.State().Watchlist)
	assert.Empty(t, s.State().Favorites)
}

func TestRemoveAndClear(t *testing.T) {
	s := newStore()
	s.Toggle(Favorites, "a")
	s.Toggle(Favorites, "b")

	assert.Equal(t, []string{"a"}, s.Remove(Favorites, "b").Favorites)
	assert.Equal(t, []string{"a"}, s.Remove(Favorites, "missing").Favorites)
	assert.Empty(t, s.Clear(Favorites).Favorites)
}

func TestBroadcast_DeliveredToCurrentListeners(t *testing.T) {
	s := newStore()

	var events []ChangeEvent
	unsubscribe := s.Subscribe(func(ev ChangeEvent) { events = append(events, ev) })

	s.Toggle(Favorites, "left-pad")
	s.Remove(Favorites, "left-pad")
	s.Clear(Watchlist)

	require.Len(t, events, 3)
	for _, ev := range events {
		assert.Equal(t, EventChanged, ev.Name)
	}
	assert.Equal(t, Favorites, events[0].List)
	assert.Equal(t, []string{"left-pad"}, events[0].State.Favorites)
	assert.Equal(t, Watchlist, events[2].List)

	unsubscribe()
	unsubscribe()
	s.Toggle(Favorites, "x")
	assert.Len(t, events, 3)
}

func TestBroadcast_LateSubscriberGetsNothingRetroactively(t *testing.T) {
	s := newStore()
	s.Toggle(Favorites, "a")

	fired := false
	s.Subscribe(func(ChangeEvent) { fired = true })
	assert.False(t, fired)
}

func TestBroadcast_PanickingListenerIsContained(t *testing.T) {
	s := newStore()
	s.Subscribe(func(ChangeEvent) { panic("boom") })

	got := 0
	s.Subscribe(func(ChangeEvent) { got++ })

	assert.NotPanics(t, func() { s.Toggle(Favorites, "a") })
	assert.Equal(t, 1, got)
}

func TestBroadcast_ListenerCannotMutateStore(t *testing.T) {
	s := newStore()
	s.Subscribe(func(ev ChangeEvent) {
		if len(ev.State.Favorites) > 0 {
			ev.State.Favorites[0] = "mutated"
		}
	})
	st := s.Toggle(Favorites, "a")
	assert.Equal(t, []string{"a"}, st.Favorites)
	assert.Equal(t, []string{"a"}, s.State().Favorites)
}

func TestToggle_ConcurrentNoLostUpdates(t *testing.T) {
	s := newStore()
	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	var wg sync.WaitGroup
	for _, n := range names {
		wg.Add(1)
		go func(n string) {
			defer wg.Done()
			s.Toggle(Favorites, n)
		}(n)
	}
	wg.Wait()

	assert.ElementsMatch(t, names, s.State().Favorites)
}

func TestBroadcast_ConcurrentEventsArriveInWriteOrder(t *testing.T) {
	s := newStore()

	var (
		mu   sync.Mutex
		last State
	)
	s.Subscribe(func(ev ChangeEvent) {
		mu.Lock()
		last = ev.State
		mu.Unlock()
	})

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	var wg sync.WaitGroup
	for round := 0; round < 25; round++ {
		for _, n := range names {
			wg.Add(1)
			go func(n string) {
				defer wg.Done()
				s.Toggle(Favorites, n)
			}(n)
		}
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, s.State(), last, "last event must carry the final persisted state")
}

func TestStoredDuplicatesAreRepaired(t *testing.T) {
	backend := kv.NewMemory()
	require.NoError(t, backend.Set(Key, []byte(`{"favorites":["a","a"," b "],"watchlist":null}`)))
	s := NewStore(kv.New(backend, nil), nil)

	st := s.State()
	assert.Equal(t, []string{"a", "b"}, st.Favorites)
	assert.Equal(t, []string{}, st.Watchlist)
}

func TestUnavailableStorageMatchesEmpty(t *testing.T) {
	unavailable := NewStore(kv.New(nil, nil), nil)
	empty := newStore()

	assert.Equal(t, empty.State(), unavailable.State())
	assert.Equal(t, empty.Toggle(Favorites, "left-pad"), unavailable.Toggle(Favorites, "left-pad"))
	assert.False(t, unavailable.IsSaved(Favorites, "left-pad"))
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in      string
		want    List
		wantErr bool
	}{
		{"favorites", Favorites, false},
		{" FAV ", Favorites, false},
		{"watchlist", Watchlist, false},
		{"watch", Watchlist, false},
		{"stars", "", true},
	}
	for _, tt := range tests {
		got, err := ParseList(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
