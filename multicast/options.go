package multicast

import (
	"github.com/google/uuid"

	"github.com/kbukum/seqshare/logger"
	"github.com/kbukum/seqshare/observability"
)

type options struct {
	name    string
	log     *logger.Logger
	metrics *observability.MulticastMetrics
	tracing bool
}

// Option configures a Sequence.
type Option func(*options)

// WithName sets the name used in logs, metrics and the component registry.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithLogger sets the logger for lifecycle events.
// Defaults to the "multicast" logger from the registry.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records pulls, replays, evictions and rejections on m.
func WithMetrics(m *observability.MulticastMetrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTracing wraps every producer pull in a span.
func WithTracing(enabled bool) Option {
	return func(o *options) { o.tracing = enabled }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		o.name = "sequence-" + uuid.NewString()[:8]
	}
	if o.log == nil {
		o.log = logger.Get("multicast")
	}
	return o
}
