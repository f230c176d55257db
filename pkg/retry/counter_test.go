package retry_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/foomo/mockserver/pkg/retry"
)

func TestCounterBump(t *testing.T) {
	c := retry.NewCounter()

	assert.Equal(t, 1, c.Bump("/fail-then-ok/a"))
	assert.Equal(t, 2, c.Bump("/fail-then-ok/a"))
	assert.Equal(t, 3, c.Bump("/fail-then-ok/a"))

	// distinct paths keep independent counts
	assert.Equal(t, 1, c.Bump("/fail-then-ok/b"))
	assert.Equal(t, 3, c.Count("/fail-then-ok/a"))
}

func TestCounterCountWithoutBump(t *testing.T) {
	c := retry.NewCounter()

	assert.Equal(t, 0, c.Count("/never-seen"))
	c.Bump("/never-seen")
	assert.Equal(t, 1, c.Count("/never-seen"))
}

func TestCounterConcurrentBump(t *testing.T) {
	const callers = 100

	c := retry.NewCounter()

	var (
		mu   sync.Mutex
		seen = map[int]bool{}
	)
	g := errgroup.Group{}
	for i := 0; i < callers; i++ {
		g.Go(func() error {
			count := c.Bump("/fail-then-ok/shared")
			mu.Lock()
			seen[count] = true
			mu.Unlock()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	// no lost updates: every caller observed a distinct count
	assert.Len(t, seen, callers)
	assert.Equal(t, callers, c.Count("/fail-then-ok/shared"))
}

func TestCounterSnapshot(t *testing.T) {
	c := retry.NewCounter()
	c.Bump("/a")
	c.Bump("/a")
	c.Bump("/b")

	snapshot := c.Snapshot()
	assert.Equal(t, map[string]int{"/a": 2, "/b": 1}, snapshot)

	// the snapshot is a copy
	snapshot["/a"] = 42
	assert.Equal(t, 2, c.Count("/a"))
}
