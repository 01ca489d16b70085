package backend

import (
	"context"
	"sync"
	"time"

	"salesdash/internal/dataset"
)

// Fetcher produces a full snapshot. *Client satisfies it through FetchAll.
type Fetcher interface {
	FetchAll(ctx context.Context) (*dataset.Snapshot, error)
}

// FetcherFunc adapts a function such as (*Client).FetchJoined.
type FetcherFunc func(ctx context.Context) (*dataset.Snapshot, error)

func (f FetcherFunc) FetchAll(ctx context.Context) (*dataset.Snapshot, error) {
	return f(ctx)
}

// State is the loader's view for observers. Loading holds while any load is
// in flight; the outcome fields belong to the most recently started load
// that has finished.
type State struct {
	Loading  bool
	InFlight int
	Err      error
	Snapshot *dataset.Snapshot
	LoadedAt time.Time
}

// Loader tracks load outcomes. It never serves a cached snapshot: every
// Load goes to the backend.
type Loader struct {
	fetcher Fetcher
	now     func() time.Time

	mu       sync.RWMutex
	inFlight int
	started  uint64
	recorded uint64
	state    State
}

func NewLoader(f Fetcher) *Loader {
	return &Loader{fetcher: f, now: time.Now}
}

func (l *Loader) Load(ctx context.Context) (*dataset.Snapshot, error) {
	l.mu.Lock()
	l.inFlight++
	l.started++
	seq := l.started
	l.mu.Unlock()

	snap, err := l.fetcher.FetchAll(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.inFlight--
	// A slower, older load must not overwrite a newer outcome.
	if seq > l.recorded {
		l.recorded = seq
		if err != nil {
			l.state = State{Err: err, LoadedAt: l.now()}
		} else {
			l.state = State{Snapshot: snap, LoadedAt: l.now()}
		}
	}
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	st := l.state
	st.InFlight = l.inFlight
	st.Loading = l.inFlight > 0
	return st
}
