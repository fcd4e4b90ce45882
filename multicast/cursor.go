package multicast

import (
	"context"

	"github.com/kbukum/seqshare/pipeline"
)

// Cursor is one consumer's read position in a Sequence. A Cursor is meant
// for a single consumer at a time; different cursors of the same Sequence
// may be used concurrently.
type Cursor[T any] struct {
	id    uint64
	coord *coordinator[T]

	// guarded by coord.mu
	position uint64
	admitted bool
	disposed bool
}

var _ pipeline.Iterator[int] = (*Cursor[int])(nil)

// ID returns the cursor's identifier, unique within its Sequence.
func (c *Cursor[T]) ID() uint64 { return c.id }

// Position returns the index of the next slot the cursor will observe.
func (c *Cursor[T]) Position() uint64 {
	c.coord.mu.Lock()
	defer c.coord.mu.Unlock()
	return c.position
}

// Advance returns the next slot. Producer faults and completion arrive as
// terminal slots and are returned again on every later call. The error is
// reserved for disposal, reader capacity and cancellation of ctx.
func (c *Cursor[T]) Advance(ctx context.Context) (Slot[T], error) {
	return c.coord.advance(ctx, c)
}

// Next implements pipeline.Iterator.
func (c *Cursor[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	s, err := c.Advance(ctx)
	if err != nil {
		return zero, false, err
	}
	switch s.Kind {
	case SlotValue:
		return s.Value, true, nil
	case SlotFault:
		return zero, false, s.Err
	default:
		return zero, false, nil
	}
}

// Close disposes the cursor. Sibling cursors and the producer are not
// affected, and closing an already closed cursor is a no-op. Like every
// other cursor operation it fails with DISPOSED once the Sequence has been
// disposed.
func (c *Cursor[T]) Close() error {
	return c.coord.disposeCursor(c)
}
