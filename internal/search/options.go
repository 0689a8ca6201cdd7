package search

import (
	"context"
	"time"
)

const (
	// DefaultDelay is the quiet period used when WithDelay is not given.
	DefaultDelay = 300 * time.Millisecond
	// DefaultCacheCapacity is the cache size used when WithCacheCapacity is not given.
	DefaultCacheCapacity = 50
)

type options struct {
	delay     time.Duration
	capacity  int
	onChange  func()
	parent    context.Context
	afterFunc AfterFunc
}

// Option configures a Controller.
type Option func(*options)

// WithDelay sets the debounce quiet period. Negative values are treated as zero.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		o.delay = d
	}
}

// WithCacheCapacity sets the maximum number of cached results.
// Zero or less disables the cache.
func WithCacheCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithOnChange registers a callback invoked after every observable state
// change. It runs outside the controller lock and must not block; read the
// new state with State.
func WithOnChange(fn func()) Option {
	return func(o *options) {
		o.onChange = fn
	}
}

// WithContext sets the parent of every lookup context. Cancelling it aborts
// the in-flight lookup without surfacing an error.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.parent = ctx
		}
	}
}

func withAfterFunc(af AfterFunc) Option {
	return func(o *options) {
		o.afterFunc = af
	}
}
