package client

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	MinQueryLength  = 2
)

// State is what a search box should currently show.
type State int

const (
	BelowThreshold State = iota
	Searching
	Error
	Empty
	Results
)

func (s State) String() string {
	switch s {
	case BelowThreshold:
		return "below-threshold"
	case Searching:
		return "searching"
	case Error:
		return "error"
	case Empty:
		return "empty"
	case Results:
		return "results"
	}
	return "unknown"
}

// Snapshot is the state of a LiveSearch after some input or response.
type Snapshot struct {
	Query   string
	State   State
	Results []SearchHit
	Err     error
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchHit, error)
}

// LiveSearch drives a search-as-you-type box. Keystrokes are debounced,
// a new query cancels the request in flight, and only the latest query's
// response is ever applied.
type LiveSearch struct {
	searcher Searcher
	delay    time.Duration
	onChange func(Snapshot)

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	current Snapshot
}

type LiveSearchOption func(*LiveSearch)

func WithDebounce(d time.Duration) LiveSearchOption {
	return func(l *LiveSearch) {
		l.delay = d
	}
}

// NewLiveSearch calls onChange on every state change. onChange runs with the
// LiveSearch locked and must not call back into it.
func NewLiveSearch(searcher Searcher, onChange func(Snapshot), opts ...LiveSearchOption) *LiveSearch {
	l := &LiveSearch{
		searcher: searcher,
		delay:    DefaultDebounce,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Input records a keystroke.
func (l *LiveSearch) Input(query string) {
	query = strings.TrimSpace(query)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.stopLocked()

	if utf8.RuneCountInString(query) < MinQueryLength {
		l.setLocked(Snapshot{Query: query, State: BelowThreshold})
		return
	}

	l.setLocked(Snapshot{Query: query, State: Searching})
	seq := l.seq
	l.timer = time.AfterFunc(l.delay, func() { l.run(seq, query) })
}

func (l *LiveSearch) run(seq uint64, query string) {
	l.mu.Lock()
	if seq != l.seq {
		l.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.mu.Unlock()

	hits, err := l.searcher.Search(ctx, query)

	l.mu.Lock()
	defer l.mu.Unlock()
	cancel()
	if seq != l.seq {
		return
	}
	l.cancel = nil

	switch {
	case err != nil:
		l.setLocked(Snapshot{Query: query, State: Error, Err: err})
	case len(hits) == 0:
		l.setLocked(Snapshot{Query: query, State: Empty, Results: []SearchHit{}})
	default:
		l.setLocked(Snapshot{Query: query, State: Results, Results: hits})
	}
}

// Current returns the latest snapshot.
func (l *LiveSearch) Current() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Close abandons any pending or in-flight search.
func (l *LiveSearch) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	l.stopLocked()
}

func (l *LiveSearch) stopLocked() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *LiveSearch) setLocked(s Snapshot) {
	l.current = s
	if l.onChange != nil {
		l.onChange(s)
	}
}
