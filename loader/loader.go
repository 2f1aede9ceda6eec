// Package loader provides a per-request batching and caching layer for
// keyed entity lookups. Individual Load calls issued while resolving one
// response graph are coalesced into deduplicated bulk fetches, and resolved
// values are memoized for the lifetime of the request. A Loader must never
// outlive or be shared across requests.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-blog-server/internal/errors"
)

const (
	defaultWait     = time.Millisecond
	defaultMaxBatch = 100
)

// FetchFunc performs the bulk fetch for one batch window. Keys absent from
// the returned map resolve their callers to ErrNotFound; an error fails
// every caller waiting on the window.
type FetchFunc[K comparable, V any] func(ctx context.Context, keys []K) (map[K]V, error)

type Option func(*options)

type options struct {
	wait     time.Duration
	maxBatch int
}

// WithWait sets how long a batch window stays open collecting keys before
// the bulk fetch is dispatched
func WithWait(wait time.Duration) Option {
	return func(o *options) { o.wait = wait }
}

// WithMaxBatch caps the number of distinct keys per bulk fetch. A full
// window dispatches immediately without waiting out the timer.
func WithMaxBatch(maxBatch int) Option {
	return func(o *options) { o.maxBatch = maxBatch }
}

// Loader batches and caches lookups for a single request
type Loader[K comparable, V any] struct {
	fetch    FetchFunc[K, V]
	wait     time.Duration
	maxBatch int

	mu      sync.Mutex
	cache   map[K]*thunk[V]
	pending *batch[K, V]
}

// thunk is the shared pending-or-resolved result for one key. done is closed
// exactly once, after which val/err never change.
type thunk[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// batch accumulates the distinct keys of one scheduling window, in the order
// they were first requested
type batch[K comparable, V any] struct {
	keys   []K
	thunks map[K]*thunk[V]
}

// New creates a request-scoped loader around the given bulk fetch
func New[K comparable, V any](fetch FetchFunc[K, V], opts ...Option) *Loader[K, V] {
	o := options{wait: defaultWait, maxBatch: defaultMaxBatch}
	for _, opt := range opts {
		opt(&o)
	}
	return &Loader[K, V]{
		fetch:    fetch,
		wait:     o.wait,
		maxBatch: o.maxBatch,
		cache:    make(map[K]*thunk[V]),
	}
}

// Load fetches the value for key, batching with other in-flight loads of the
// same request. Repeated loads of one key share a single fetch and return
// the memoized result afterwards.
func (l *Loader[K, V]) Load(ctx context.Context, key K) (V, error) {
	l.mu.Lock()

	if t, ok := l.cache[key]; ok {
		l.mu.Unlock()
		<-t.done
		return t.val, t.err
	}

	if l.pending == nil {
		b := &batch[K, V]{thunks: make(map[K]*thunk[V])}
		l.pending = b
		go l.dispatchAfterWait(ctx, b)
	}

	t := &thunk[V]{done: make(chan struct{})}
	b := l.pending
	b.keys = append(b.keys, key)
	b.thunks[key] = t
	l.cache[key] = t

	full := l.maxBatch > 0 && len(b.keys) >= l.maxBatch
	if full {
		l.pending = nil
	}
	l.mu.Unlock()

	if full {
		l.dispatch(ctx, b)
	}

	<-t.done
	return t.val, t.err
}

// dispatchAfterWait closes the batch window once the wait elapses. The batch
// may already have been dispatched early by hitting maxBatch.
func (l *Loader[K, V]) dispatchAfterWait(ctx context.Context, b *batch[K, V]) {
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	<-timer.C

	l.mu.Lock()
	if l.pending != b {
		l.mu.Unlock()
		return
	}
	l.pending = nil
	l.mu.Unlock()

	l.dispatch(ctx, b)
}

// dispatch performs the single bulk fetch for a closed window and settles
// every waiter
func (l *Loader[K, V]) dispatch(ctx context.Context, b *batch[K, V]) {
	values, err := l.fetch(ctx, b.keys)
	if err != nil {
		// The whole window failed. Evict its keys from the cache so a
		// later Load may open a fresh window, then fail every waiter
		// with the same error.
		l.mu.Lock()
		for _, key := range b.keys {
			if l.cache[key] == b.thunks[key] {
				delete(l.cache, key)
			}
		}
		l.mu.Unlock()

		for _, key := range b.keys {
			t := b.thunks[key]
			t.err = err
			close(t.done)
		}
		return
	}

	for _, key := range b.keys {
		t := b.thunks[key]
		if val, ok := values[key]; ok {
			t.val = val
		} else {
			t.err = errors.Wrapf(errors.ErrNotFound, "loader: key %v", key)
		}
		close(t.done)
	}
}
