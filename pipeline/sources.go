package pipeline

import "context"

// Range yields count consecutive integers starting at start.
func Range(start, count int) *Pipeline[int] {
	return &Pipeline[int]{
		create: func(_ context.Context) Iterator[int] {
			return &rangeIter{next: start, end: start + count}
		},
	}
}

// Empty yields nothing and completes immediately.
func Empty[T any]() *Pipeline[T] {
	return FromSlice[T](nil)
}

// Throw faults with err on the first pull.
func Throw[T any](err error) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &throwIter[T]{err: err}
		},
	}
}

// Defer calls factory on every enumeration and enumerates its result.
func Defer[T any](factory func() *Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return factory().create(ctx)
		},
	}
}

type rangeIter struct {
	next, end int
}

func (it *rangeIter) Next(ctx context.Context) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	if it.next >= it.end {
		return 0, false, nil
	}
	v := it.next
	it.next++
	return v, true, nil
}

func (it *rangeIter) Close() error { return nil }

type throwIter[T any] struct {
	err error
}

func (it *throwIter[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it *throwIter[T]) Close() error { return nil }
