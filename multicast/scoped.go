package multicast

import (
	"context"
	"sync"

	"github.com/kbukum/seqshare/errors"
	"github.com/kbukum/seqshare/pipeline"
)

// ShareWith runs body against a Share sequence created for each enumeration
// of the returned pipeline. The sequence and the src iterator beneath it are
// disposed as soon as that enumeration ends or is closed.
func ShareWith[T, R any](src *pipeline.Pipeline[T], body func(*Sequence[T]) *pipeline.Pipeline[R], opts ...Option) *pipeline.Pipeline[R] {
	return scoped(src, SharePolicy, body, opts)
}

// PublishWith is ShareWith under the Publish policy.
func PublishWith[T, R any](src *pipeline.Pipeline[T], body func(*Sequence[T]) *pipeline.Pipeline[R], opts ...Option) *pipeline.Pipeline[R] {
	return scoped(src, PublishPolicy, body, opts)
}

// MemoizeWith is ShareWith under the Memoize policy.
func MemoizeWith[T, R any](src *pipeline.Pipeline[T], body func(*Sequence[T]) *pipeline.Pipeline[R], opts ...Option) *pipeline.Pipeline[R] {
	return scoped(src, MemoizePolicy, body, opts)
}

// MemoizeNWith is ShareWith under the MemoizeN policy. readers is checked
// immediately.
func MemoizeNWith[T, R any](src *pipeline.Pipeline[T], readers int, body func(*Sequence[T]) *pipeline.Pipeline[R], opts ...Option) (*pipeline.Pipeline[R], error) {
	if err := validateReaders(readers); err != nil {
		return nil, err
	}
	return scoped(src, MemoizeNPolicy(readers), body, opts), nil
}

func scoped[T, R any](src *pipeline.Pipeline[T], policy Policy, body func(*Sequence[T]) *pipeline.Pipeline[R], opts []Option) *pipeline.Pipeline[R] {
	return pipeline.FromFunc(func(ctx context.Context) pipeline.Iterator[R] {
		seq := newSequence(src.Iter(ctx), policy, opts)
		return &scopedIter[T, R]{inner: body(seq).Iter(ctx), seq: seq}
	})
}

// scopedIter disposes its sequence when the body's iterator ends.
type scopedIter[T, R any] struct {
	inner pipeline.Iterator[R]
	seq   *Sequence[T]
	once  sync.Once
	err   error
}

func (it *scopedIter[T, R]) Next(ctx context.Context) (R, bool, error) {
	v, ok, err := it.inner.Next(ctx)
	if err != nil || !ok {
		it.end()
	}
	return v, ok, err
}

// Close closes the body's iterator and disposes the sequence. Cursors of the
// sequence report DISPOSED when the enumeration already ended and disposed
// it, which is the expected outcome here.
func (it *scopedIter[T, R]) Close() error {
	err := it.inner.Close()
	it.end()
	if err != nil && !(errors.IsDisposed(err) && it.seq.Disposed()) {
		return err
	}
	return it.err
}

func (it *scopedIter[T, R]) end() {
	it.once.Do(func() {
		it.err = it.seq.Dispose()
	})
}
