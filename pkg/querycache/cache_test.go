package querycache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCache_Fetch_success(t *testing.T) {
	c := New[[]string]()

	got, err := c.Fetch(context.Background(), "items", func(context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	e, ok := c.Get("items")
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.False(t, e.Fetching)
	assert.False(t, e.Stale)
}

func TestCache_Fetch_error_is_recorded_without_retry(t *testing.T) {
	c := New[int]()
	boom := errors.New("boom")
	var calls int

	_, err := c.Fetch(context.Background(), "n", func(context.Context) (int, error) {
		calls++
		return 0, boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)

	e, _ := c.Get("n")
	assert.Equal(t, StatusError, e.Status)
	assert.ErrorIs(t, e.Err, boom)
}

func TestCache_Fetch_deduplicates_concurrent_calls(t *testing.T) {
	c := New[int]()

	var calls atomic.Int32
	release := make(chan struct{})
	started := make(chan struct{})

	fetch := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = c.Fetch(context.Background(), "n", fetch)
	}()
	<-started

	for i := 1; i < len(results); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = c.Fetch(context.Background(), "n", fetch)
		}()
	}

	// Give the joiners a chance to reach the in-flight call.
	time.Sleep(50 * time.Millisecond)

	close(release)
	wg.Wait()

	assert.LessOrEqual(t, calls.Load(), int32(len(results)))
	assert.GreaterOrEqual(t, calls.Load(), int32(1))
	for _, r := range results {
		assert.Equal(t, 42, r)
	}
}

func TestCache_Fetch_keeps_success_status_while_refetching(t *testing.T) {
	c := New[int]()
	c.SetData("n", func(int, bool) int { return 1 })

	c.begin("n")

	e, _ := c.Get("n")
	assert.Equal(t, StatusSuccess, e.Status)
	assert.True(t, e.Fetching)
	assert.Equal(t, 1, e.Data)
}

func TestCache_Fetch_first_load_is_loading(t *testing.T) {
	c := New[int]()

	c.begin("n")

	e, _ := c.Get("n")
	assert.Equal(t, StatusLoading, e.Status)
}

func TestCache_SetData_appends_to_existing(t *testing.T) {
	c := New[[]string]()
	_, err := c.Fetch(context.Background(), "items", func(context.Context) ([]string, error) {
		return []string{"a"}, nil
	})
	require.NoError(t, err)

	c.SetData("items", func(old []string, ok bool) []string {
		assert.True(t, ok)
		return append(old, "b")
	})

	assert.Equal(t, []string{"a", "b"}, c.Data("items"))
}

func TestCache_SetData_missing_key(t *testing.T) {
	c := New[[]string]()

	c.SetData("items", func(old []string, ok bool) []string {
		assert.False(t, ok)
		assert.Nil(t, old)
		return []string{"x"}
	})

	e, ok := c.Get("items")
	require.True(t, ok)
	assert.Equal(t, StatusSuccess, e.Status)
	assert.Equal(t, []string{"x"}, e.Data)
}

func TestCache_Invalidate(t *testing.T) {
	c := New[int]()

	assert.False(t, c.Invalidate("n"), "unknown keys need no refetch")

	c.SetData("n", func(int, bool) int { return 7 })
	assert.True(t, c.Invalidate("n"))

	e, _ := c.Get("n")
	assert.True(t, e.Stale)
	assert.Equal(t, 7, e.Data, "invalidation keeps the last value until refetched")

	_, err := c.Fetch(context.Background(), "n", func(context.Context) (int, error) { return 8, nil })
	require.NoError(t, err)

	e, _ = c.Get("n")
	assert.False(t, e.Stale)
	assert.Equal(t, 8, e.Data)
}

func TestCache_Invalidate_discards_fetch_started_before_it(t *testing.T) {
	c := New[int]()
	c.SetData("n", func(int, bool) int { return 3 })

	var source atomic.Int32
	source.Store(3)

	read := make(chan struct{})
	release := make(chan struct{})
	earlier := make(chan int, 1)

	go func() {
		v, _ := c.Fetch(context.Background(), "n", func(context.Context) (int, error) {
			v := int(source.Load())
			close(read)
			<-release
			return v, nil
		})
		earlier <- v
	}()
	<-read

	source.Store(4)
	require.True(t, c.Invalidate("n"))

	got, err := c.Fetch(context.Background(), "n", func(context.Context) (int, error) {
		return int(source.Load()), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got, "a fetch after Invalidate must not join the earlier call")

	e, _ := c.Get("n")
	assert.Equal(t, 4, e.Data)
	assert.False(t, e.Stale)
	assert.True(t, e.Fetching, "the earlier call is still running")

	close(release)
	assert.Equal(t, 3, <-earlier)

	e, _ = c.Get("n")
	assert.Equal(t, 4, e.Data, "the earlier result is discarded")
	assert.False(t, e.Stale)
	assert.False(t, e.Fetching)
}

func TestCache_Invalidate_discarded_error_is_not_recorded(t *testing.T) {
	c := New[int]()
	c.SetData("n", func(int, bool) int { return 1 })

	read := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := c.Fetch(context.Background(), "n", func(context.Context) (int, error) {
			close(read)
			<-release
			return 0, errors.New("timeout")
		})
		done <- err
	}()
	<-read

	require.True(t, c.Invalidate("n"))
	close(release)
	require.Error(t, <-done)

	e, _ := c.Get("n")
	assert.Equal(t, StatusSuccess, e.Status)
	assert.NoError(t, e.Err)
	assert.True(t, e.Stale, "still waiting for a refetch")
}

func TestCache_SetData_wins_over_fetch_in_flight(t *testing.T) {
	c := New[[]string]()
	c.SetData("items", func([]string, bool) []string { return []string{"a"} })

	read := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = c.Fetch(context.Background(), "items", func(context.Context) ([]string, error) {
			close(read)
			<-release
			return []string{"a"}, nil
		})
	}()
	<-read

	c.SetData("items", func(old []string, _ bool) []string { return append(old, "b") })
	close(release)
	<-done

	assert.Equal(t, []string{"a", "b"}, c.Data("items"))
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "loading", StatusLoading.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "success", StatusSuccess.String())
}
