// Package ratelimit provides a per-client fixed-window request limiter.
package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type record struct {
	windowStart time.Time
	count       int
}

// Options configures a Limiter. Zero values fall back to the defaults
// below; Now may be overridden with a fake clock in tests.
type Options struct {
	MaxPerWindow  int
	Window        time.Duration
	SweepInterval time.Duration
	Now           func() time.Time
}

const (
	defaultMaxPerWindow  = 10
	defaultWindow        = 60 * time.Minute
	defaultSweepInterval = 10 * time.Minute
)

// Limiter tracks request counts per client identifier within a fixed
// window. It is safe for concurrent use; Allow and the background
// sweep share the record map under one mutex.
type Limiter struct {
	mu      sync.Mutex
	records map[string]*record

	max    int
	window time.Duration
	sweep  time.Duration
	now    func() time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New constructs a Limiter and starts its background sweep.
// Call Close to stop the sweep at shutdown.
func New(opts Options) *Limiter {
	if opts.MaxPerWindow <= 0 {
		opts.MaxPerWindow = defaultMaxPerWindow
	}
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	l := &Limiter{
		records: make(map[string]*record),
		max:     opts.MaxPerWindow,
		window:  opts.Window,
		sweep:   opts.SweepInterval,
		now:     opts.Now,
		stopCh:  make(chan struct{}),
	}
	go l.sweeper()
	return l
}

// Allow reports whether a request from clientID is admitted. A missing
// or expired record resets the window to {now, 1} and admits; a full
// window rejects without mutation; otherwise the count is incremented.
func (l *Limiter) Allow(clientID string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[clientID]
	if !ok || now.Sub(rec.windowStart) > l.window {
		l.records[clientID] = &record{windowStart: now, count: 1}
		return true
	}
	if rec.count >= l.max {
		return false
	}
	rec.count++
	return true
}

// Len returns the number of live records.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Sweep deletes every record whose window has expired and returns the
// number removed. The background sweeper calls this periodically;
// it is exported for deterministic tests.
func (l *Limiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for id, rec := range l.records {
		if now.Sub(rec.windowStart) > l.window {
			delete(l.records, id)
			removed++
		}
	}
	return removed
}

func (l *Limiter) sweeper() {
	ticker := time.NewTicker(l.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if removed := l.Sweep(); removed > 0 {
				log.Debug().Int("removed", removed).Int("live", l.Len()).Msg("rate limit records swept")
			}
		case <-l.stopCh:
			return
		}
	}
}

// Close stops the background sweep. Safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}
