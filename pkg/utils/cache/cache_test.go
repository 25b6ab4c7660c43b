package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/linkrelay/pkg/utils/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestKey(t *testing.T) {
	gt.Value(t, cache.Key("issue", "ABC-1")).Equal("issue:ABC-1")
	gt.Value(t, cache.Key("issue", "ABC-1", "creator")).Equal("issue:ABC-1:creator")
}

func TestDo_MaxAge(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := cache.New(cache.WithClock(clock.Now))
	policy := cache.MaxAge(300000 * time.Millisecond)

	var calls int
	fetch := func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	}

	v, err := cache.Do(ctx, c, "k", policy, fetch)
	gt.NoError(t, err).Required()
	gt.Value(t, v).Equal("value")
	gt.Value(t, calls).Equal(1)

	t.Run("within max age returns cached value", func(t *testing.T) {
		clock.Advance(299999 * time.Millisecond)
		v, err := cache.Do(ctx, c, "k", policy, fetch)
		gt.NoError(t, err).Required()
		gt.Value(t, v).Equal("value")
		gt.Value(t, calls).Equal(1)
	})

	t.Run("after max age fetches again", func(t *testing.T) {
		clock.Advance(1 * time.Millisecond)
		_, err := cache.Do(ctx, c, "k", policy, fetch)
		gt.NoError(t, err).Required()
		gt.Value(t, calls).Equal(2)
	})
}

func TestDo_Forever(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := cache.New(cache.WithClock(clock.Now))

	var calls int
	fetch := func(ctx context.Context) (int, error) {
		calls++
		return 42, nil
	}

	for range 3 {
		v, err := cache.Do(ctx, c, "k", cache.Forever, fetch)
		gt.NoError(t, err).Required()
		gt.Value(t, v).Equal(42)
		clock.Advance(24 * time.Hour)
	}
	gt.Value(t, calls).Equal(1)
}

func TestDo_ErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	c := cache.New()
	errFetch := errors.New("boom")

	var calls int
	_, err := cache.Do(ctx, c, "k", cache.Forever, func(ctx context.Context) (string, error) {
		calls++
		return "", errFetch
	})
	gt.Error(t, err).Is(errFetch)
	gt.Value(t, c.Len()).Equal(0)

	v, err := cache.Do(ctx, c, "k", cache.Forever, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})
	gt.NoError(t, err).Required()
	gt.Value(t, v).Equal("ok")
	gt.Value(t, calls).Equal(2)
}

func TestDo_SingleFlight(t *testing.T) {
	ctx := context.Background()
	c := cache.New()

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "shared", nil
	}

	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := cache.Do(ctx, c, "k", cache.Forever, fetch)
			if err == nil {
				results[i] = v
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	gt.Value(t, calls.Load()).Equal(int32(1))
	for _, r := range results {
		gt.Value(t, r).Equal("shared")
	}
}

func TestDo_FetchOutlivesCallerCancel(t *testing.T) {
	c := cache.New()
	started := make(chan struct{})
	release := make(chan struct{})

	fetch := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "ABC-1", nil
	}

	first, cancel := context.WithCancel(context.Background())
	var firstErr error
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = cache.Do(first, c, "issue:ABC-1", cache.Forever, fetch)
	}()
	<-started

	var second string
	var secondErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		second, secondErr = cache.Do(context.Background(), c, "issue:ABC-1", cache.Forever,
			func(ctx context.Context) (string, error) { return "ABC-1", nil })
	}()

	cancel()
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	gt.NoError(t, firstErr)
	gt.NoError(t, secondErr)
	gt.Value(t, second).Equal("ABC-1")
	gt.Value(t, c.Len()).Equal(1)
}

func TestDo_TypeMismatch(t *testing.T) {
	ctx := context.Background()
	c := cache.New()

	_, err := cache.Do(ctx, c, "k", cache.Forever, func(ctx context.Context) (string, error) {
		return "text", nil
	})
	gt.NoError(t, err).Required()

	_, err = cache.Do(ctx, c, "k", cache.Forever, func(ctx context.Context) (int, error) {
		return 1, nil
	})
	gt.Value(t, err).NotNil()
}

func TestPruneAndClear(t *testing.T) {
	ctx := context.Background()
	clock := newClock()
	c := cache.New(cache.WithClock(clock.Now))

	put := func(key string, policy cache.Policy) {
		_, err := cache.Do(ctx, c, key, policy, func(ctx context.Context) (string, error) {
			return key, nil
		})
		gt.NoError(t, err).Required()
	}

	put("short", cache.MaxAge(time.Minute))
	put("long", cache.MaxAge(time.Hour))
	put("forever", cache.Forever)
	gt.Value(t, c.Len()).Equal(3)

	clock.Advance(2 * time.Minute)
	gt.Value(t, c.Prune()).Equal(1)
	gt.Value(t, c.Len()).Equal(2)

	c.Clear()
	gt.Value(t, c.Len()).Equal(0)
}
