// Package pipeline provides composable, pull-based sequence operators.
//
// Pipelines are lazy: no work happens until values are pulled via Collect,
// Drain, ForEach or Iter. Each stage pulls from the previous stage on demand,
// providing natural backpressure without explicit flow control. Every
// enumeration of a Pipeline creates a fresh Iterator; an Iterator is a
// single-consumer cursor and must be closed by whoever created it.
//
// # Sources
//
//   - FromSlice, From, FromFunc
//   - Range, Empty, Throw, Defer
//
// # Operators
//
//   - Map, Filter, Tap, Reduce, Concat
//   - If, While, DoWhile: choose or repeat pipelines at enumeration time
//   - Catch, CatchAs: switch to a fallback pipeline when a fault occurs
//
// # Usage
//
//	src := pipeline.Range(1, 5)
//	doubled := pipeline.Map(src, func(_ context.Context, n int) (int, error) {
//	    return n * 2, nil
//	})
//	evens := pipeline.Filter(doubled, func(n int) bool { return n%4 == 0 })
//	results, _ := pipeline.Collect(ctx, evens)
//
// Shared enumeration of one producer by several cursors lives in the
// multicast package, whose Cursor type implements Iterator.
package pipeline
