package onboarding

import (
	"context"
	"sync"
	"time"
)

// SlugStatus is the advisory availability state shown while typing.
type SlugStatus string

const (
	SlugIdle        SlugStatus = "idle"
	SlugChecking    SlugStatus = "checking"
	SlugAvailable   SlugStatus = "available"
	SlugUnavailable SlugStatus = "unavailable"
)

// SlugAvailability checks whether a slug is free.
type SlugAvailability interface {
	CheckSlug(ctx context.Context, slug string) (bool, error)
}

// SlugChecker debounces availability checks: each new input schedules a
// delayed check that supersedes any previous pending one, so only the latest
// check's result is ever applied.
type SlugChecker struct {
	checker SlugAvailability
	delay   time.Duration

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64
	slug   string
	status SlugStatus
}

// NewSlugChecker creates a SlugChecker with the given debounce delay.
func NewSlugChecker(checker SlugAvailability, delay time.Duration) *SlugChecker {
	return &SlugChecker{
		checker: checker,
		delay:   delay,
		status:  SlugIdle,
	}
}

// Schedule queues an availability check for slug after the debounce delay,
// cancelling any check still pending. Slugs shorter than 2 characters reset
// the status to idle without issuing a check.
func (c *SlugChecker) Schedule(slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}

	c.slug = slug
	if len(slug) < 2 {
		c.status = SlugIdle
		return
	}

	c.status = SlugChecking
	seq := c.seq

	c.timer = time.AfterFunc(c.delay, func() {
		available, err := c.checker.CheckSlug(context.Background(), slug)

		c.mu.Lock()
		defer c.mu.Unlock()

		// A newer input superseded this check; drop the result.
		if seq != c.seq {
			return
		}

		switch {
		case err != nil:
			c.status = SlugIdle
		case available:
			c.status = SlugAvailable
		default:
			c.status = SlugUnavailable
		}
	})
}

// Status returns the slug the checker last saw and its availability state.
func (c *SlugChecker) Status() (string, SlugStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.slug, c.status
}

// Stop cancels any pending check.
func (c *SlugChecker) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
