// Package multicast shares one forward-only pull sequence between any number
// of independent cursors without re-running the producer.
//
// A Sequence owns the producer, an index-addressed buffer of slots and the
// set of live cursors. Each cursor either replays a buffered slot or, when
// it sits at the live tail, becomes the single puller allowed to call the
// producer. Every index is produced exactly once no matter how many cursors
// exist. Faults and completion are cached as terminal slots and replayed as
// the identical value to every cursor that reaches them.
//
// # Policies
//
//   - Share: work queue. Each produced value goes to whichever cursor pulls first.
//   - Publish: broadcast from the live edge. Late cursors miss earlier values.
//   - Memoize: full replay from index 0. Nothing is ever evicted.
//   - MemoizeN: full replay, limited to n distinct reading cursors.
//
// # Usage
//
//	seq := multicast.Memoize(pipeline.Range(0, 5).Iter(ctx))
//	defer seq.Dispose()
//
//	a, _ := seq.Enumerate()
//	b, _ := seq.Enumerate()
//	first, _ := pipeline.CollectIter(ctx, a)  // 0..4, pulled from the producer
//	second, _ := pipeline.CollectIter(ctx, b) // 0..4, replayed
//
// The scoped forms (ShareWith, PublishWith, MemoizeWith, MemoizeNWith) build
// a fresh Sequence per enumeration of the resulting pipeline and dispose it
// when that enumeration ends.
package multicast
