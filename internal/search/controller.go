// Package search turns a stream of query edits into at most one lookup per
// quiet period, serves repeated queries from a bounded cache, and discards
// the results of lookups that were superseded before they finished.
package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
)

// LookupFunc resolves a query. The context is cancelled when the lookup is
// superseded or the controller is closed.
type LookupFunc[R any] func(ctx context.Context, query string) (R, error)

// Controller coordinates debouncing, caching and lookups for one search box.
// All events are applied under a single lock in the order they are observed.
type Controller[R any] struct {
	mu        sync.Mutex
	lookup    LookupFunc[R]
	debouncer *Debouncer
	cache     *Cache[R]
	parent    context.Context
	onChange  func()

	query     string
	debounced string
	result    R
	hasResult bool
	loading   bool
	err       error
	phase     Phase
	version   uint64

	pendingGen uint64 // bumped on every query change; stale emissions compare against it
	seq        uint64 // token source
	active     uint64 // token of the in-flight lookup, 0 when none
	cancel     context.CancelFunc
	closed     bool
	stats      Stats
}

// New creates a controller that resolves queries with lookup.
func New[R any](lookup LookupFunc[R], opts ...Option) *Controller[R] {
	o := options{
		delay:     DefaultDelay,
		capacity:  DefaultCacheCapacity,
		parent:    context.Background(),
		afterFunc: systemAfterFunc,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Controller[R]{
		lookup:    lookup,
		debouncer: newDebouncer(o.delay, o.afterFunc),
		cache:     NewCache[R](o.capacity),
		parent:    o.parent,
		onChange:  o.onChange,
		phase:     PhaseIdle,
	}
}

// SetQuery records a new query value and restarts the debounce delay.
// Any lookup still running for an earlier query is cancelled.
func (c *Controller[R]) SetQuery(query string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		log.Printf("search: SetQuery(%q) after close ignored", query)
		return
	}
	if query == c.query && c.phase != PhaseIdle {
		c.mu.Unlock()
		return
	}

	c.query = query
	c.cancelLookupLocked()
	c.phase = PhasePending
	c.pendingGen++
	gen := c.pendingGen
	c.debouncer.Schedule(func() {
		c.emit(gen)
	})
	c.bumpLocked()
	c.mu.Unlock()

	c.notify()
}

// emit publishes the debounced query once the quiet period has elapsed.
func (c *Controller[R]) emit(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.pendingGen {
		c.mu.Unlock()
		return
	}
	c.debounced = c.query
	c.stats.Emissions++
	c.resolveLocked(false)
	c.mu.Unlock()

	c.notify()
}

// Refetch drops the cached result for the debounced query and looks it up
// again right away. A query still waiting out the debounce is emitted at
// once instead, so the lookup always targets what the user typed last.
func (c *Controller[R]) Refetch() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.phase == PhasePending {
		c.debouncer.Cancel()
		c.pendingGen++
		c.debounced = c.query
		c.stats.Emissions++
	} else if isBlank(c.debounced) {
		c.mu.Unlock()
		return
	}
	c.cache.Remove(c.debounced)
	c.resolveLocked(true)
	c.mu.Unlock()

	c.notify()
}

// ClearCache empties the result cache. An in-flight lookup still stores its
// result when it completes.
func (c *Controller[R]) ClearCache() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cache.Clear()
	c.bumpLocked()
	c.mu.Unlock()

	c.notify()
}

// SetDelay changes the debounce delay for subsequent query changes.
func (c *Controller[R]) SetDelay(d time.Duration) {
	c.debouncer.SetDelay(d)
}

// Close cancels the pending debounce and the in-flight lookup. Results that
// arrive afterwards are dropped. Close is idempotent.
func (c *Controller[R]) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.debouncer.Stop()
	c.pendingGen++
	c.cancelLookupLocked()
	c.bumpLocked()
	return nil
}

// State returns a snapshot of the observable state.
func (c *Controller[R]) State() State[R] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State[R]{
		Query:          c.query,
		DebouncedQuery: c.debounced,
		Result:         c.result,
		HasResult:      c.hasResult,
		Loading:        c.loading,
		Err:            c.err,
		CacheSize:      c.cache.Len(),
		Phase:          c.phase,
		Version:        c.version,
	}
}

// Stats returns activity counters.
func (c *Controller[R]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// CachedQueries lists cached keys from oldest to newest.
func (c *Controller[R]) CachedQueries() []string {
	return c.cache.Keys()
}

// resolveLocked serves the debounced query from the cache or starts a lookup.
func (c *Controller[R]) resolveLocked(bypassCache bool) {
	query := c.debounced
	c.cancelLookupLocked()

	if isBlank(query) {
		var zero R
		c.result = zero
		c.hasResult = false
		c.err = nil
		c.phase = PhaseIdle
		c.bumpLocked()
		return
	}

	c.phase = PhaseChecking
	c.err = nil

	if !bypassCache {
		if result, ok := c.cache.Get(query); ok {
			c.stats.CacheHits++
			c.result = result
			c.hasResult = true
			c.phase = PhaseSettled
			c.bumpLocked()
			return
		}
		c.stats.CacheMisses++
	}

	c.startLookupLocked(query)
}

func (c *Controller[R]) startLookupLocked(query string) {
	c.seq++
	token := c.seq
	ctx, cancel := context.WithCancel(c.parent)

	c.active = token
	c.cancel = cancel
	c.loading = true
	c.phase = PhaseLoading
	c.stats.Lookups++
	c.bumpLocked()

	go c.run(ctx, token, query)
}

func (c *Controller[R]) run(ctx context.Context, token uint64, query string) {
	result, err := c.invoke(ctx, query)
	c.finish(ctx, token, query, result, err)
}

func (c *Controller[R]) invoke(ctx context.Context, query string) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lookup panic: %v", r)
		}
	}()
	return c.lookup(ctx, query)
}

func (c *Controller[R]) finish(ctx context.Context, token uint64, query string, result R, err error) {
	c.mu.Lock()
	if c.closed || token != c.active {
		c.stats.Discarded++
		c.mu.Unlock()
		log.Printf("search: discarded stale result for '%s'", query)
		return
	}

	cancel := c.cancel
	c.active = 0
	c.cancel = nil
	c.loading = false
	c.phase = PhaseSettled

	switch {
	case err != nil && isCancellation(ctx, err):
		// The parent context went away; nothing failed from the caller's view.
		c.stats.Cancelled++
	case err != nil:
		var zero R
		c.err = err
		c.result = zero
		c.hasResult = false
		c.stats.Failures++
		log.Printf("search: lookup for '%s' failed: %v", query, err)
	default:
		if c.cache.Put(query, result) {
			c.stats.Evictions++
		}
		c.result = result
		c.hasResult = true
		c.err = nil
	}
	c.bumpLocked()
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.notify()
}

func (c *Controller[R]) cancelLookupLocked() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.active != 0 {
		c.active = 0
		c.stats.Cancelled++
	}
	c.loading = false
}

func (c *Controller[R]) bumpLocked() {
	c.version++
}

func (c *Controller[R]) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}

func isBlank(query string) bool {
	return strings.TrimSpace(query) == ""
}

func isCancellation(ctx context.Context, err error) bool {
	ctxErr := ctx.Err()
	return ctxErr != nil && errors.Is(err, ctxErr)
}
