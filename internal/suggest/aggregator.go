package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/five82/pkgscout/internal/logging"
	"github.com/five82/pkgscout/internal/registry"
)

const (
	DefaultDebounce    = 150 * time.Millisecond
	DefaultCacheTTL    = 2 * time.Minute
	DefaultMinQueryLen = 2
	DefaultLookupLimit = 10
	defaultCacheSize   = 256
)

// RecentSource supplies recent searches, most recent first.
type RecentSource interface {
	Get() []string
}

// Phase is the lifecycle stage of the latest query.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDebouncing
	PhaseFetching
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDebouncing:
		return "debouncing"
	case PhaseFetching:
		return "fetching"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Result is the suggestion list for the current input.
type Result struct {
	// Query is the trimmed current input; local sources are filtered by it.
	Query string
	// Debounced is the query the remote contribution belongs to.
	Debounced string
	Items     []Item
	// Loading is true while a remote lookup for Debounced is in flight.
	Loading bool
	Phase   Phase
	// Err is the last lookup failure for Debounced. It never removes local
	// suggestions.
	Err error
}

// Options configure an Aggregator. Zero values select the defaults.
type Options struct {
	Lookup      registry.Searcher
	Recent      RecentSource
	Popular     []string
	Clock       Clock
	Logger      *zap.Logger
	Debounce    time.Duration
	CacheTTL    time.Duration
	CacheSize   int
	MinQueryLen int
	LookupLimit int
}

// Aggregator turns keystrokes into a merged, bounded suggestion list.
type Aggregator struct {
	recent      RecentSource
	popular     []string
	clock       Clock
	logger      *zap.Logger
	debounce    time.Duration
	minQueryLen int
	cache       *lookupCache

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	closed    bool
	query     string
	inputSeq  uint64
	timer     Timer
	debounced string
	token     uint64
	phase     Phase
	loading   bool
	apiItems  []Item
	lastErr   error
	updates   chan Result
}

// New builds an Aggregator. The remote lookup is optional; without one only
// local sources contribute.
func New(opts Options) *Aggregator {
	clock := opts.Clock
	if clock == nil {
		clock = realClock{}
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	minLen := opts.MinQueryLen
	if minLen <= 0 {
		minLen = DefaultMinQueryLen
	}
	limit := opts.LookupLimit
	if limit <= 0 {
		limit = DefaultLookupLimit
	}

	ctx, cancel := context.WithCancel(context.Background())
	popular := make([]string, len(opts.Popular))
	copy(popular, opts.Popular)

	return &Aggregator{
		recent:      opts.Recent,
		popular:     popular,
		clock:       clock,
		logger:      logging.OrNop(opts.Logger).Named("suggest"),
		debounce:    debounce,
		minQueryLen: minLen,
		cache:       newLookupCache(opts.Lookup, limit, size, ttl, clock),
		ctx:         ctx,
		cancel:      cancel,
		updates:     make(chan Result, 1),
	}
}

// Input records a keystroke. Local suggestions reflect raw immediately; the
// remote lookup is scheduled after the debounce quiet period.
func (a *Aggregator) Input(raw string) Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.query = strings.TrimSpace(raw)
	if a.closed {
		return a.resultLocked()
	}

	if a.timer != nil {
		a.timer.Stop()
	}
	if utf8.RuneCountInString(a.query) < a.minQueryLen {
		// Short queries never show remote items; a lookup still in flight
		// is invalidated by the new token.
		a.token++
		a.apiItems = nil
		a.loading = false
		a.lastErr = nil
	}
	a.inputSeq++
	seq, query := a.inputSeq, a.query
	a.timer = a.clock.AfterFunc(a.debounce, func() { a.fire(seq, query) })
	a.phase = PhaseDebouncing
	return a.resultLocked()
}

// Current returns the latest result without changing any state.
func (a *Aggregator) Current() Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resultLocked()
}

// Updates delivers a fresh Result whenever asynchronous work changes the
// output. Only the newest undelivered Result is kept. The channel is closed
// by Close.
func (a *Aggregator) Updates() <-chan Result {
	return a.updates
}

// Close stops pending timers, abandons in-flight lookups and closes the
// updates channel. It is safe to call more than once.
func (a *Aggregator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
	}
	a.cancel()
	close(a.updates)
}

// fire runs when the input has been quiet for the debounce delay.
func (a *Aggregator) fire(seq uint64, query string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || seq != a.inputSeq {
		return
	}

	a.debounced = query
	a.token++
	token := a.token
	a.lastErr = nil

	if utf8.RuneCountInString(query) < a.minQueryLen {
		a.apiItems = nil
		a.loading = false
		a.phase = PhaseSettled
		a.publishLocked()
		return
	}

	if items, ok := a.cache.get(query); ok {
		a.logger.Debug("lookup cache hit", zap.String("query", query))
		a.apiItems = items
		a.loading = false
		a.phase = PhaseSettled
		a.publishLocked()
		return
	}

	a.apiItems = nil
	a.loading = true
	a.phase = PhaseFetching
	a.publishLocked()
	go a.fetch(token, query)
}

func (a *Aggregator) fetch(token uint64, query string) {
	items, err := a.cache.fetch(a.ctx, query)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	if token != a.token {
		a.logger.Debug("discarding stale lookup",
			zap.String("query", query),
			zap.String("current", a.debounced))
		return
	}

	if err != nil {
		a.logger.Warn("lookup failed", zap.String("query", query), zap.Error(err))
		a.apiItems = nil
		a.lastErr = err
	} else {
		a.apiItems = items
		a.lastErr = nil
	}
	a.loading = false
	a.phase = PhaseSettled
	a.publishLocked()
}

// publishLocked replaces any undelivered update with the current result.
// Callers hold a.mu, so there is a single producer at a time.
func (a *Aggregator) publishLocked() {
	r := a.resultLocked()
	select {
	case <-a.updates:
	default:
	}
	select {
	case a.updates <- r:
	default:
	}
}

func (a *Aggregator) resultLocked() Result {
	var recent []string
	if a.recent != nil {
		recent = a.recent.Get()
	}
	recentItems, popularItems := LocalItems(a.query, recent, a.popular)
	return Result{
		Query:     a.query,
		Debounced: a.debounced,
		Items:     Merge(a.apiItems, recentItems, popularItems),
		Loading:   a.loading,
		Phase:     a.phase,
		Err:       a.lastErr,
	}
}
