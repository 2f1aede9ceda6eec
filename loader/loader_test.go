package loader_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/loader"
)

// countingFetch records every batch it is asked for
type countingFetch struct {
	mu      sync.Mutex
	batches [][]int64
	values  map[int64]string
	err     error
}

func (f *countingFetch) fetch(_ context.Context, keys []int64) (map[int64]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.batches = append(f.batches, append([]int64(nil), keys...))
	if f.err != nil {
		return nil, f.err
	}

	found := make(map[int64]string, len(keys))
	for _, key := range keys {
		if val, ok := f.values[key]; ok {
			found[key] = val
		}
	}
	return found, nil
}

func (f *countingFetch) batchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func TestLoader_CoalescesConcurrentLoadsOfSameKey(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{5: "five"}}
	l := loader.New(fetch.fetch, loader.WithWait(5*time.Millisecond))

	var wg sync.WaitGroup
	results := make([]string, 3)
	errs := make([]error, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = l.Load(context.Background(), 5)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, 1, fetch.batchCount())
	require.Equal(t, []int64{5}, fetch.batches[0])
	for _, val := range results {
		require.Equal(t, "five", val)
	}
}

func TestLoader_BatchesDistinctKeysInRequestOrder(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{1: "one", 2: "two", 3: "three"}}
	l := loader.New(fetch.fetch, loader.WithWait(100*time.Millisecond))

	type outcome struct {
		val string
		err error
	}
	outcomes := make([]outcome, 3)

	var wg sync.WaitGroup
	for i, key := range []int64{1, 2, 3} {
		wg.Add(1)
		go func(i int, key int64) {
			defer wg.Done()
			val, err := l.Load(context.Background(), key)
			outcomes[i] = outcome{val: val, err: err}
		}(i, key)
		time.Sleep(10 * time.Millisecond) // stagger within one window
	}
	wg.Wait()

	require.Equal(t, 1, fetch.batchCount())
	require.Equal(t, []int64{1, 2, 3}, fetch.batches[0])
	require.Equal(t, "one", outcomes[0].val)
	require.Equal(t, "two", outcomes[1].val)
	require.Equal(t, "three", outcomes[2].val)
}

func TestLoader_CachesResolvedKeys(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{5: "five"}}
	l := loader.New(fetch.fetch, loader.WithWait(time.Millisecond))

	val, err := l.Load(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "five", val)
	require.Equal(t, 1, fetch.batchCount())

	val, err = l.Load(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, "five", val)
	require.Equal(t, 1, fetch.batchCount(), "cached key must not trigger a new fetch")
}

func TestLoader_FreshInstanceHasEmptyCache(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{5: "five"}}

	first := loader.New(fetch.fetch, loader.WithWait(time.Millisecond))
	_, err := first.Load(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 1, fetch.batchCount())

	second := loader.New(fetch.fetch, loader.WithWait(time.Millisecond))
	_, err = second.Load(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 2, fetch.batchCount(), "a new instance must not reuse the old cache")
}

func TestLoader_MissingKeyFailsOnlyThatCaller(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{1: "one"}}
	l := loader.New(fetch.fetch, loader.WithWait(5*time.Millisecond))

	var wg sync.WaitGroup
	var okVal string
	var okErr, missErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		okVal, okErr = l.Load(context.Background(), 1)
	}()
	go func() {
		defer wg.Done()
		_, missErr = l.Load(context.Background(), 404)
	}()
	wg.Wait()

	require.NoError(t, okErr)
	require.Equal(t, "one", okVal)
	require.Error(t, missErr)
	require.ErrorIs(t, missErr, apperrors.ErrNotFound)
	require.Equal(t, 1, fetch.batchCount())
}

func TestLoader_MissingKeyResultIsMemoized(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{}}
	l := loader.New(fetch.fetch, loader.WithWait(time.Millisecond))

	_, err := l.Load(context.Background(), 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = l.Load(context.Background(), 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Equal(t, 1, fetch.batchCount(), "a per-key miss is a resolved result and must be cached")
}

func TestLoader_BatchFailureFailsAllWaitersAndAllowsRetry(t *testing.T) {
	fetch := &countingFetch{err: apperrors.ErrInternal}
	l := loader.New(fetch.fetch, loader.WithWait(5*time.Millisecond))

	var wg sync.WaitGroup
	failures := make([]error, 2)
	for i, key := range []int64{1, 2} {
		wg.Add(1)
		go func(i int, key int64) {
			defer wg.Done()
			_, failures[i] = l.Load(context.Background(), key)
		}(i, key)
	}
	wg.Wait()

	require.ErrorIs(t, failures[0], apperrors.ErrInternal)
	require.ErrorIs(t, failures[1], apperrors.ErrInternal)

	// The failed window is torn down, a later load opens a fresh one
	fetch.mu.Lock()
	fetch.err = nil
	fetch.values = map[int64]string{1: "one"}
	fetch.mu.Unlock()

	val, err := l.Load(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "one", val)
	require.Equal(t, 2, fetch.batchCount())
}

func TestLoader_MaxBatchDispatchesEagerly(t *testing.T) {
	fetch := &countingFetch{values: map[int64]string{1: "one", 2: "two"}}
	l := loader.New(fetch.fetch, loader.WithWait(time.Hour), loader.WithMaxBatch(2))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, key := range []int64{1, 2} {
		wg.Add(1)
		go func(i int, key int64) {
			defer wg.Done()
			_, errs[i] = l.Load(context.Background(), key)
		}(i, key)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	require.Equal(t, 1, fetch.batchCount())
	require.Len(t, fetch.batches[0], 2)
}
