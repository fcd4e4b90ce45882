package pipeline

import (
	"context"
	"errors"
)

// Catch continues with the pipeline returned by handler when p faults.
// Values already yielded by p are kept. A nil handler result re-raises
// the fault. Faults raised by the fallback are not caught again.
func Catch[T any](p *Pipeline[T], handler func(error) *Pipeline[T]) *Pipeline[T] {
	return &Pipeline[T]{
		create: func(ctx context.Context) Iterator[T] {
			return &catchIter[T]{current: p.create(ctx), handler: handler}
		},
	}
}

// CatchAs is Catch restricted to faults matching E via errors.As.
// Other faults propagate unchanged.
func CatchAs[T any, E error](p *Pipeline[T], handler func(E) *Pipeline[T]) *Pipeline[T] {
	return Catch(p, func(err error) *Pipeline[T] {
		var target E
		if !errors.As(err, &target) {
			return nil
		}
		return handler(target)
	})
}

type catchIter[T any] struct {
	current Iterator[T]
	handler func(error) *Pipeline[T]
	handled bool
}

func (it *catchIter[T]) Next(ctx context.Context) (result T, ok bool, err error) {
	val, ok, err := it.current.Next(ctx)
	if err == nil || it.handled {
		return val, ok, err
	}
	it.handled = true
	fallback := it.handler(err)
	if fallback == nil {
		return val, false, err
	}
	_ = it.current.Close()
	it.current = fallback.create(ctx)
	return it.current.Next(ctx)
}

func (it *catchIter[T]) Close() error { return it.current.Close() }
