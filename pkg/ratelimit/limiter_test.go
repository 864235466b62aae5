package ratelimit_test

import (
	"sync"
	"testing"
	"time"

	"palette_api/pkg/ratelimit"

	"github.com/stretchr/testify/require"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newLimiter(t *testing.T, clock *fakeClock, max int, window time.Duration) *ratelimit.Limiter {
	t.Helper()
	l := ratelimit.New(ratelimit.Options{
		MaxPerWindow: max,
		Window:       window,
		Now:          clock.Now,
	})
	t.Cleanup(l.Close)
	return l
}

func TestAdmitsUpToMax(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(t, clock, 10, time.Hour)

	for i := 0; i < 10; i++ {
		require.True(t, l.Allow("1.2.3.4"), "request %d should be admitted", i+1)
	}
	require.False(t, l.Allow("1.2.3.4"), "11th request should be rejected")
}

func TestRejectionDoesNotMutate(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(t, clock, 2, time.Hour)

	require.True(t, l.Allow("a"))
	require.True(t, l.Allow("a"))
	// Repeated rejections never extend the window.
	for i := 0; i < 5; i++ {
		require.False(t, l.Allow("a"))
	}

	clock.Advance(time.Hour + time.Second)
	require.True(t, l.Allow("a"), "window should reset after expiry")
}

func TestWindowReset(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(t, clock, 3, time.Hour)

	for i := 0; i < 3; i++ {
		require.True(t, l.Allow("client"))
	}
	require.False(t, l.Allow("client"))

	clock.Advance(61 * time.Minute)
	// Reset to count=1, so max-1 more fit in the new window.
	require.True(t, l.Allow("client"))
	require.True(t, l.Allow("client"))
	require.True(t, l.Allow("client"))
	require.False(t, l.Allow("client"))
}

func TestClientsAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(t, clock, 1, time.Hour)

	require.True(t, l.Allow("1.1.1.1"))
	require.False(t, l.Allow("1.1.1.1"))
	require.True(t, l.Allow("2.2.2.2"))
}

func TestSweepDeletesExpiredOnly(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(t, clock, 5, time.Hour)

	require.True(t, l.Allow("old"))
	clock.Advance(45 * time.Minute)
	require.True(t, l.Allow("fresh"))
	require.Equal(t, 2, l.Len())

	clock.Advance(30 * time.Minute) // "old" is now past the window, "fresh" is not
	require.Equal(t, 1, l.Sweep())
	require.Equal(t, 1, l.Len())

	// A swept client starts a fresh window.
	require.True(t, l.Allow("old"))
}

func TestConcurrentAllow(t *testing.T) {
	clock := newFakeClock()
	l := newLimiter(t, clock, 100, time.Hour)

	var wg sync.WaitGroup
	admitted := make(chan bool, 200)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admitted <- l.Allow("shared")
		}()
	}
	wg.Wait()
	close(admitted)

	count := 0
	for ok := range admitted {
		if ok {
			count++
		}
	}
	require.Equal(t, 100, count)
}

func TestDefaults(t *testing.T) {
	l := ratelimit.New(ratelimit.Options{})
	defer l.Close()

	for i := 0; i < 10; i++ {
		require.True(t, l.Allow("c"))
	}
	require.False(t, l.Allow("c"))
}
