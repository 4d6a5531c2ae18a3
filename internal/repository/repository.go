// Package repository provides the fixture-backed storage adapters.
//
// They simulate a remote API during development: every operation waits a
// fixed per-operation delay before returning, and no mutation is ever
// written back to the fixtures. Apparent creates, updates and deletes are
// echoed to the caller and then forgotten, so each call sees the original
// dataset again. That non-durability is a deliberate property of this
// backend, not a bug.
package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"cafirm-backend/internal/fixtures"
)

var ErrNotFound = errors.New("not found")

// Delays holds the artificial latency applied per operation. The zero
// value disables latency entirely, which is what tests use.
type Delays struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
	Search time.Duration
}

// DefaultDelays mirrors the latency the interactive UI was built against.
var DefaultDelays = Delays{
	List:   500 * time.Millisecond,
	Get:    300 * time.Millisecond,
	Create: 500 * time.Millisecond,
	Update: 500 * time.Millisecond,
	Delete: 300 * time.Millisecond,
	Search: 400 * time.Millisecond,
}

// wait blocks for d or until ctx is done, whichever comes first. Closing a
// dialog mid-request used to leave the delay running to completion; making
// the suspension context-aware lets callers abandon it.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// newID fabricates an id from the wall clock, the same way the mock API
// did. Two creates in the same millisecond would collide; acceptable for a
// non-durable store.
func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Health reports whether the fixture dataset is internally consistent.
type Health struct {
	Data *fixtures.Dataset
}

func (h Health) Health(ctx context.Context) error {
	return h.Data.Validate()
}
