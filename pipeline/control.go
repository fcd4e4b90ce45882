package pipeline

import "context"

// If chooses between two pipelines when enumeration starts. A nil
// otherwise branch behaves as Empty.
func If[T any](cond func() bool, then, otherwise *Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			if cond() {
				return then.create(ctx)
			}
			if otherwise == nil {
				return &sliceIter[T]{}
			}
			return otherwise.create(ctx)
		},
	}
}

// While re-enumerates body for as long as cond holds. cond is checked
// before every pass, including the first.
func While[T any](cond func() bool, body *Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &loopIter[T]{cond: cond, body: body}
		},
	}
}

// DoWhile enumerates body once, then again for as long as cond holds.
func DoWhile[T any](body *Pipeline[T], cond func() bool) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(_ context.Context) Iterator[T] {
			return &loopIter[T]{cond: cond, body: body, skipFirstCheck: true}
		},
	}
}

type loopIter[T any] struct {
	cond           func() bool
	body           *Pipeline[T]
	skipFirstCheck bool
	current        Iterator[T]
	done           bool
}

func (it *loopIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	var zero T
	for !it.done {
		if it.current == nil {
			if it.skipFirstCheck {
				it.skipFirstCheck = false
			} else if !it.cond() {
				it.done = true
				break
			}
			it.current = it.body.create(ctx)
		}
		val, ok, err := it.current.Next(ctx)
		if err != nil {
			it.done = true
			return zero, false, err
		}
		if ok {
			return val, true, nil
		}
		closeErr := it.current.Close()
		it.current = nil
		if closeErr != nil {
			it.done = true
			return zero, false, closeErr
		}
	}
	return zero, false, nil
}

func (it *loopIter[T]) Close() error {
	it.done = true
	if it.current == nil {
		return nil
	}
	err := it.current.Close()
	it.current = nil
	return err
}
