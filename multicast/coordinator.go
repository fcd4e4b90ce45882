package multicast

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/seqshare/errors"
	"github.com/kbukum/seqshare/logger"
	"github.com/kbukum/seqshare/observability"
	"github.com/kbukum/seqshare/pipeline"
)

const (
	resourceSequence = "shared sequence"
	resourceCursor   = "cursor"
)

// coordinator owns the producer and arbitrates every cursor's access to it.
//
// Two locks are involved. gate is held for the whole duration of a producer
// pull so the producer is never re-entered. mu guards the bookkeeping below
// and is only ever held briefly, so cursors served from the buffer never
// wait on a slow producer.
type coordinator[T any] struct {
	name    string
	policy  Policy
	src     pipeline.Iterator[T]
	log     *logger.Logger
	metrics *observability.MulticastMetrics
	tracing bool

	gate      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	closeErr  error

	mu           sync.Mutex
	buf          buffer[T]
	cursors      map[uint64]*Cursor[T]
	nextID       uint64
	readersUsed  int
	admittedLive int
	pulls        uint64
	pulling      bool
	disposed     bool
	final        *Slot[T]
}

func newCoordinator[T any](src pipeline.Iterator[T], policy Policy, o options) *coordinator[T] {
	return &coordinator[T]{
		name:    o.name,
		policy:  policy,
		src:     src,
		log:     o.log,
		metrics: o.metrics,
		tracing: o.tracing,
		gate:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		cursors: make(map[uint64]*Cursor[T]),
	}
}

// newCursor registers a cursor at the policy's start position.
// The producer is not touched.
func (c *coordinator[T]) newCursor() (*Cursor[T], error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		err := errors.Disposed(resourceSequence)
		c.recordRejection(context.Background(), err)
		return nil, err
	}
	c.nextID++
	cur := &Cursor[T]{id: c.nextID, coord: c, position: c.startLocked()}
	c.cursors[cur.id] = cur
	c.mu.Unlock()

	c.metrics.CursorOpened(context.Background(), c.policy.label())
	c.log.Debug("cursor opened", c.fields(logger.FieldCursor, cur.id, logger.FieldIndex, cur.position))
	return cur, nil
}

func (c *coordinator[T]) startLocked() uint64 {
	switch {
	case c.policy.startsAtOrigin():
		return 0
	case c.final != nil:
		return c.final.Index
	default:
		return c.buf.tail
	}
}

// advance serves the slot at the cursor's position, pulling it from the
// producer when nobody has produced it yet.
func (c *coordinator[T]) advance(ctx context.Context, cur *Cursor[T]) (Slot[T], error) {
	c.mu.Lock()
	if err := c.admitLocked(cur); err != nil {
		c.mu.Unlock()
		c.recordRejection(ctx, err)
		return Slot[T]{}, err
	}
	if s, ok := c.cachedLocked(cur); ok {
		evicted := c.consumeLocked(cur, s)
		c.mu.Unlock()
		c.metrics.RecordReplay(ctx, c.policy.label())
		c.metrics.RecordEvictions(ctx, c.policy.label(), evicted)
		return s, nil
	}
	c.mu.Unlock()
	return c.pull(ctx, cur)
}

// pull waits for the gate and produces the slot at tail. ctx only bounds the
// wait: whatever the producer returns, including an error derived from ctx,
// is recorded as the slot for that index.
func (c *coordinator[T]) pull(ctx context.Context, cur *Cursor[T]) (Slot[T], error) {
	if err := ctx.Err(); err != nil {
		return Slot[T]{}, err
	}
	select {
	case c.gate <- struct{}{}:
	case <-ctx.Done():
		return Slot[T]{}, ctx.Err()
	case <-c.done:
		err := errors.Disposed(resourceSequence)
		c.recordRejection(ctx, err)
		return Slot[T]{}, err
	}
	release := func() { <-c.gate }

	c.mu.Lock()
	// Another cursor may have produced the slot, or the sequence may have
	// been disposed, while this one waited for the gate.
	if err := c.admitLocked(cur); err != nil {
		c.mu.Unlock()
		release()
		c.recordRejection(ctx, err)
		return Slot[T]{}, err
	}
	if s, ok := c.cachedLocked(cur); ok {
		evicted := c.consumeLocked(cur, s)
		c.mu.Unlock()
		release()
		c.metrics.RecordReplay(ctx, c.policy.label())
		c.metrics.RecordEvictions(ctx, c.policy.label(), evicted)
		return s, nil
	}
	index := c.buf.tail
	c.pulling = true
	c.pulls++
	c.mu.Unlock()

	v, ok, err := c.produce(ctx, index)

	c.mu.Lock()
	c.pulling = false
	if c.disposed {
		// dispose left the producer to us so it is closed only after Next returned.
		c.mu.Unlock()
		_ = c.closeProducer()
		release()
		derr := errors.Disposed(resourceSequence)
		c.recordRejection(ctx, derr)
		return Slot[T]{}, derr
	}
	s := newSlot(index, v, ok, err)
	c.buf.append(s, c.refsLocked())
	if s.Terminal() {
		c.final = &s
	}
	evicted := c.consumeLocked(cur, s)
	c.mu.Unlock()
	release()

	c.metrics.RecordEvictions(ctx, c.policy.label(), evicted)
	if s.Terminal() {
		c.log.Debug("producer reached terminal slot", c.fields(logger.FieldIndex, s.Index, "kind", s.Kind.String()))
	}
	return s, nil
}

// produce performs exactly one producer pull.
func (c *coordinator[T]) produce(ctx context.Context, index uint64) (T, bool, error) {
	start := time.Now()
	pctx := ctx
	var span trace.Span
	if c.tracing {
		pctx, span = observability.StartSpan(ctx, observability.SpanMulticastPull, trace.WithAttributes(
			attribute.String(observability.AttrSequence, c.name),
			attribute.String(observability.AttrPolicy, c.policy.String()),
			attribute.Int64(observability.AttrIndex, int64(index)),
		))
		defer span.End()
	}

	v, ok, err := c.src.Next(pctx)
	kind := kindOf(ok, err)

	if span != nil {
		span.SetAttributes(attribute.String(observability.AttrSlotKind, kind.String()))
		observability.SetSpanError(span, err)
	}
	c.metrics.RecordPull(ctx, c.policy.label(), kind.String(), time.Since(start))
	return v, ok, err
}

// admitLocked rejects calls on disposed cursors or sequences and spends
// reader budget on a cursor's first advance under a capped policy.
func (c *coordinator[T]) admitLocked(cur *Cursor[T]) error {
	if c.disposed {
		return errors.Disposed(resourceSequence)
	}
	if cur.disposed {
		return errors.Disposed(resourceCursor)
	}
	if !c.policy.Capped() || cur.admitted {
		return nil
	}
	if c.readersUsed >= c.policy.Readers {
		return errors.CapacityExceeded(c.policy.Readers)
	}
	cur.admitted = true
	c.readersUsed++
	c.admittedLive++
	return nil
}

func (c *coordinator[T]) cachedLocked(cur *Cursor[T]) (Slot[T], bool) {
	if c.policy.Mode == ModeShare {
		if c.final != nil {
			return *c.final, true
		}
		return Slot[T]{}, false
	}
	return c.buf.at(cur.position)
}

// consumeLocked moves the cursor past s and returns the number of evicted
// slots. A cursor never moves past a terminal slot.
func (c *coordinator[T]) consumeLocked(cur *Cursor[T], s Slot[T]) int {
	if s.Terminal() {
		cur.position = s.Index
		return 0
	}
	cur.position = s.Index + 1
	if c.policy.tracksReaders() {
		c.buf.release(s.Index, s.Index+1)
	}
	return c.evictLocked()
}

// refsLocked is the number of readers a freshly produced slot waits for.
func (c *coordinator[T]) refsLocked() int {
	switch {
	case c.policy.Mode == ModePublish:
		return len(c.cursors)
	case c.policy.Capped():
		// admitted readers plus every reader that may still be admitted
		return c.admittedLive + c.policy.Readers - c.readersUsed
	default:
		return 0
	}
}

func (c *coordinator[T]) evictLocked() int {
	if !c.policy.evicts() {
		return 0
	}
	return c.buf.evict()
}

// disposeCursor releases cur's share of the buffer. It fails with DISPOSED
// once the whole sequence has been disposed.
func (c *coordinator[T]) disposeCursor(cur *Cursor[T]) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return errors.Disposed(resourceSequence)
	}
	if cur.disposed {
		c.mu.Unlock()
		return nil
	}
	cur.disposed = true
	delete(c.cursors, cur.id)
	if c.policy.tracksReaders() && (!c.policy.Capped() || cur.admitted) {
		c.buf.release(cur.position, c.buf.tail)
	}
	if cur.admitted {
		c.admittedLive--
	}
	evicted := c.evictLocked()
	position := cur.position
	c.mu.Unlock()

	ctx := context.Background()
	c.metrics.CursorClosed(ctx, c.policy.label(), 1)
	c.metrics.RecordEvictions(ctx, c.policy.label(), evicted)
	c.log.Debug("cursor closed", c.fields(logger.FieldCursor, cur.id, logger.FieldIndex, position))
	return nil
}

// dispose invalidates every cursor and closes the producer exactly once.
// When a pull is in flight the puller closes the producer once Next returns.
func (c *coordinator[T]) dispose() error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil
	}
	c.disposed = true
	close(c.done)
	n := len(c.cursors)
	for id, cur := range c.cursors {
		cur.disposed = true
		delete(c.cursors, id)
	}
	c.admittedLive = 0
	c.buf.reset()
	pulling := c.pulling
	c.mu.Unlock()

	c.metrics.CursorClosed(context.Background(), c.policy.label(), n)
	c.log.Debug("shared sequence disposed", c.fields("cursors", n, "pull_in_flight", pulling))
	if pulling {
		return nil
	}
	return c.closeProducer()
}

func (c *coordinator[T]) closeProducer() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.src.Close()
	})
	return c.closeErr
}

func (c *coordinator[T]) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

func (c *coordinator[T]) stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := Stats{
		Policy:      c.policy.String(),
		Tail:        c.buf.tail,
		Buffered:    c.buf.len(),
		Cursors:     len(c.cursors),
		ReadersUsed: c.readersUsed,
		Pulls:       c.pulls,
		Disposed:    c.disposed,
	}
	if c.final != nil {
		st.Completed = c.final.Kind == SlotCompleted
		st.Faulted = c.final.Kind == SlotFault
	}
	return st
}

func (c *coordinator[T]) recordRejection(ctx context.Context, err error) {
	reason := observability.ReasonDisposed
	if errors.IsCapacityExceeded(err) {
		reason = observability.ReasonCapacity
	}
	c.metrics.RecordRejection(ctx, c.policy.label(), reason)
}

func (c *coordinator[T]) fields(kvs ...interface{}) map[string]interface{} {
	base := []interface{}{logger.FieldSequence, c.name, logger.FieldPolicy, c.policy.String()}
	return logger.Fields(append(base, kvs...)...)
}
