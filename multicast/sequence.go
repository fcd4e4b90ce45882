package multicast

import (
	"context"
	"fmt"

	"github.com/kbukum/seqshare/component"
	"github.com/kbukum/seqshare/errors"
	"github.com/kbukum/seqshare/pipeline"
	"github.com/kbukum/seqshare/validation"
)

// Stats is a point-in-time view of a Sequence.
type Stats struct {
	Policy      string `json:"policy"`
	Tail        uint64 `json:"tail"`
	Buffered    int    `json:"buffered"`
	Cursors     int    `json:"cursors"`
	ReadersUsed int    `json:"readers_used"`
	Pulls       uint64 `json:"pulls"`
	Completed   bool   `json:"completed"`
	Faulted     bool   `json:"faulted"`
	Disposed    bool   `json:"disposed"`
}

// Sequence exposes one producer to many cursors under a Policy.
// It is safe for concurrent use.
type Sequence[T any] struct {
	coord *coordinator[T]
}

var (
	_ component.Component   = (*Sequence[int])(nil)
	_ component.Describable = (*Sequence[int])(nil)
)

// Share wraps src so each produced value goes to exactly one cursor,
// whichever asks first.
func Share[T any](src pipeline.Iterator[T], opts ...Option) *Sequence[T] {
	return newSequence(src, SharePolicy, opts)
}

// Publish wraps src so every cursor sees the values produced after it was
// created.
func Publish[T any](src pipeline.Iterator[T], opts ...Option) *Sequence[T] {
	return newSequence(src, PublishPolicy, opts)
}

// Memoize wraps src so every cursor sees the full sequence from the start.
func Memoize[T any](src pipeline.Iterator[T], opts ...Option) *Sequence[T] {
	return newSequence(src, MemoizePolicy, opts)
}

// MemoizeN is Memoize limited to readers distinct reading cursors. A cursor
// becomes a reader on its first Advance; once readers cursors have done so,
// any other cursor's Advance fails with CAPACITY_EXCEEDED. readers must be
// at least 1; src is left untouched when it is not.
func MemoizeN[T any](src pipeline.Iterator[T], readers int, opts ...Option) (*Sequence[T], error) {
	if err := validateReaders(readers); err != nil {
		return nil, err
	}
	return newSequence(src, MemoizeNPolicy(readers), opts), nil
}

// New wraps src under an arbitrary policy.
func New[T any](src pipeline.Iterator[T], policy Policy, opts ...Option) (*Sequence[T], error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return newSequence(src, policy, opts), nil
}

func newSequence[T any](src pipeline.Iterator[T], policy Policy, opts []Option) *Sequence[T] {
	o := buildOptions(opts)
	c := newCoordinator(src, policy, o)
	c.log.Debug("shared sequence created", c.fields())
	return &Sequence[T]{coord: c}
}

func validateReaders(readers int) error {
	if err := validation.New().Min("readers", readers, 1).Validate(); err != nil {
		return err
	}
	return nil
}

// Enumerate opens a new cursor. It fails with DISPOSED once the sequence
// has been disposed.
func (s *Sequence[T]) Enumerate() (*Cursor[T], error) {
	return s.coord.newCursor()
}

// Dispose closes the producer and invalidates every cursor. Later calls are
// no-ops. The returned error comes from the producer's Close.
func (s *Sequence[T]) Dispose() error {
	return s.coord.dispose()
}

// Disposed reports whether Dispose has been called.
func (s *Sequence[T]) Disposed() bool {
	return s.coord.isDisposed()
}

// Policy returns the sharing policy.
func (s *Sequence[T]) Policy() Policy {
	return s.coord.policy
}

// Stats returns a snapshot of the sequence's bookkeeping.
func (s *Sequence[T]) Stats() Stats {
	return s.coord.stats()
}

// Pipeline returns a pipeline whose every enumeration opens a new cursor.
// On a disposed sequence the first Next fails with DISPOSED.
func (s *Sequence[T]) Pipeline() *pipeline.Pipeline[T] {
	return pipeline.FromFunc(func(_ context.Context) pipeline.Iterator[T] {
		cur, err := s.Enumerate()
		if err != nil {
			return pipeline.IterFunc(func(context.Context) (T, bool, error) {
				var zero T
				return zero, false, err
			}, nil)
		}
		return cur
	})
}

// --- component.Component ---

// Name returns the sequence name.
func (s *Sequence[T]) Name() string { return s.coord.name }

// Start is a no-op for a live sequence; the producer is only pulled on demand.
func (s *Sequence[T]) Start(_ context.Context) error {
	if s.Disposed() {
		return errors.Disposed(resourceSequence)
	}
	return nil
}

// Stop disposes the sequence.
func (s *Sequence[T]) Stop(_ context.Context) error {
	return s.Dispose()
}

// Health reports unhealthy once disposed and degraded once the producer faulted.
func (s *Sequence[T]) Health(_ context.Context) component.Health {
	st := s.Stats()
	h := component.Health{Name: s.Name(), Status: component.StatusHealthy}
	switch {
	case st.Disposed:
		h.Status = component.StatusUnhealthy
		h.Message = "disposed"
	case st.Faulted:
		h.Status = component.StatusDegraded
		h.Message = "producer faulted"
	}
	return h
}

// Describe implements component.Describable.
func (s *Sequence[T]) Describe() component.Description {
	st := s.Stats()
	return component.Description{
		Name:    s.Name(),
		Type:    "sequence",
		Details: fmt.Sprintf("policy=%s cursors=%d tail=%d buffered=%d", st.Policy, st.Cursors, st.Tail, st.Buffered),
	}
}
