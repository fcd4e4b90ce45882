// Package observability provides OpenTelemetry tracing and metrics.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("seqshare"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	m, err := observability.NewMulticastMetrics(observability.Meter("seqshare"))
//	seq := multicast.Memoize(src, multicast.WithMetrics(m))
package observability
