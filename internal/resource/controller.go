package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds the limits applied to base reasoner traffic.
type Config struct {
	// MaxWorkers is the maximum number of concurrent base reasoner calls.
	// If 0, defaults to 1.
	MaxWorkers int64

	// CallsPerSecond caps the rate of base reasoner calls.
	// If 0, unlimited.
	CallsPerSecond float64

	// Burst is the number of calls allowed above the steady rate.
	// If 0, defaults to max(1, CallsPerSecond).
	Burst int
}

// Controller bounds how hard the engine may hit a base reasoner.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	workers *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited

	calls   atomic.Int64
	waiting atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		workers: semaphore.NewWeighted(cfg.MaxWorkers),
	}

	if cfg.CallsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(1, int(cfg.CallsPerSecond))
		}
		c.cfg.Burst = burst
		c.limiter = rate.NewLimiter(rate.Limit(cfg.CallsPerSecond), burst)
	}

	return c
}

// Workers returns the configured worker limit (1 for a nil controller).
func (c *Controller) Workers() int {
	if c == nil {
		return 1
	}
	return int(c.cfg.MaxWorkers)
}

// AcquireWorker reserves a worker slot, blocking while all slots are busy.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.workers.Acquire(ctx, 1)
}

// ReleaseWorker releases a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.workers.Release(1)
}

// AcquireCall waits until the rate limit admits one more base reasoner call.
func (c *Controller) AcquireCall(ctx context.Context) error {
	if c == nil {
		return nil
	}
	c.calls.Add(1)
	if c.limiter == nil {
		return nil
	}
	if c.limiter.Allow() {
		return nil
	}
	c.waiting.Add(1)
	return c.limiter.Wait(ctx)
}

// Calls returns the number of admitted calls.
func (c *Controller) Calls() int64 {
	if c == nil {
		return 0
	}
	return c.calls.Load()
}

// Throttled returns how many calls had to wait for the rate limiter.
func (c *Controller) Throttled() int64 {
	if c == nil {
		return 0
	}
	return c.waiting.Load()
}

// Limited reports whether a rate limit is configured.
func (c *Controller) Limited() bool {
	return c != nil && c.limiter != nil
}
