package retry

import (
	"sync"
)

// Counter tracks how many times each request path has been seen. It backs
// the fail-then-ok scenario: the first two requests for a path are answered
// with an error, every later one succeeds. Entries live for the lifetime of
// the process.
type Counter struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewCounter returns an empty counter.
func NewCounter() *Counter {
	return &Counter{
		counts: map[string]int{},
	}
}

// Bump increments the count for the given path and returns the new value.
// The increment and read happen under a single lock so concurrent callers
// never observe the same count twice.
func (c *Counter) Bump(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[path]++
	return c.counts[path]
}

// Count returns the current count for the given path without incrementing.
func (c *Counter) Count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[path]
}

// Snapshot returns a copy of the whole table.
func (c *Counter) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make(map[string]int, len(c.counts))
	for path, count := range c.counts {
		snapshot[path] = count
	}
	return snapshot
}
