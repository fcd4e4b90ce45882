package multicast

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kbukum/seqshare/pipeline"
)

// countingIterator wraps a producer and records how it is driven.
type countingIterator[T any] struct {
	src pipeline.Iterator[T]

	pulls     atomic.Int64
	closes    atomic.Int64
	inFlight  atomic.Int32
	reentered atomic.Bool
	afterEnd  atomic.Bool

	// entered, when set, receives a signal as each pull starts.
	entered chan struct{}
	// hold, when set, blocks each pull until it is closed or signalled.
	hold chan struct{}
}

func newCounting[T any](p *pipeline.Pipeline[T]) *countingIterator[T] {
	return &countingIterator[T]{src: p.Iter(context.Background())}
}

func (c *countingIterator[T]) Next(ctx context.Context) (T, bool, error) {
	if c.inFlight.Add(1) > 1 {
		c.reentered.Store(true)
	}
	defer c.inFlight.Add(-1)
	if c.closes.Load() > 0 {
		c.afterEnd.Store(true)
	}
	c.pulls.Add(1)
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.hold != nil {
		<-c.hold
	}
	return c.src.Next(ctx)
}

func (c *countingIterator[T]) Close() error {
	if c.inFlight.Load() > 0 {
		c.reentered.Store(true)
	}
	c.closes.Add(1)
	return c.src.Close()
}

func mustEnumerate[T any](t *testing.T, s *Sequence[T]) *Cursor[T] {
	t.Helper()
	cur, err := s.Enumerate()
	require.NoError(t, err)
	return cur
}

func nextValue[T any](t *testing.T, cur *Cursor[T]) T {
	t.Helper()
	v, ok, err := cur.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok, "expected a value from cursor %d", cur.ID())
	return v
}

func requireCompleted[T any](t *testing.T, cur *Cursor[T]) {
	t.Helper()
	_, ok, err := cur.Next(context.Background())
	require.NoError(t, err)
	require.False(t, ok, "expected cursor %d to be completed", cur.ID())
}

func drain[T any](t *testing.T, cur *Cursor[T]) ([]T, error) {
	t.Helper()
	var out []T
	for {
		v, ok, err := cur.Next(context.Background())
		if err != nil || !ok {
			return out, err
		}
		out = append(out, v)
	}
}

func ints(start, count int) []int {
	out := make([]int, count)
	for i := range out {
		out[i] = start + i
	}
	return out
}
