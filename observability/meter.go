package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/seqshare/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Rejection reasons recorded by MulticastMetrics.RecordRejection.
const (
	ReasonDisposed = "disposed"
	ReasonCapacity = "capacity"
)

// MulticastMetrics holds the instruments recorded by shared sequences.
// A nil *MulticastMetrics is valid and records nothing.
type MulticastMetrics struct {
	pulls         metric.Int64Counter
	pullDuration  metric.Float64Histogram
	replays       metric.Int64Counter
	evictions     metric.Int64Counter
	rejections    metric.Int64Counter
	activeCursors metric.Int64UpDownCounter
}

// NewMulticastMetrics creates the multicast instruments on meter.
func NewMulticastMetrics(meter metric.Meter) (*MulticastMetrics, error) {
	pulls, err := meter.Int64Counter("multicast.pulls",
		metric.WithDescription("Items requested from the underlying producer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating multicast.pulls counter: %w", err)
	}

	pullDuration, err := meter.Float64Histogram("multicast.pull.duration",
		metric.WithDescription("Time spent inside the producer per pull"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating multicast.pull.duration histogram: %w", err)
	}

	replays, err := meter.Int64Counter("multicast.replays",
		metric.WithDescription("Slots served from the buffer without touching the producer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating multicast.replays counter: %w", err)
	}

	evictions, err := meter.Int64Counter("multicast.evictions",
		metric.WithDescription("Slots dropped from the buffer"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating multicast.evictions counter: %w", err)
	}

	rejections, err := meter.Int64Counter("multicast.rejections",
		metric.WithDescription("Calls refused because of disposal or reader capacity"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating multicast.rejections counter: %w", err)
	}

	activeCursors, err := meter.Int64UpDownCounter("multicast.cursors.active",
		metric.WithDescription("Cursors currently open"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating multicast.cursors.active counter: %w", err)
	}

	return &MulticastMetrics{
		pulls:         pulls,
		pullDuration:  pullDuration,
		replays:       replays,
		evictions:     evictions,
		rejections:    rejections,
		activeCursors: activeCursors,
	}, nil
}

// RecordPull records one producer pull and the kind of slot it produced.
func (m *MulticastMetrics) RecordPull(ctx context.Context, policy, kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.pulls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("policy", policy),
		attribute.String("kind", kind),
	))
	m.pullDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("policy", policy)))
}

// RecordReplay records a slot served from the buffer.
func (m *MulticastMetrics) RecordReplay(ctx context.Context, policy string) {
	if m == nil {
		return
	}
	m.replays.Add(ctx, 1, metric.WithAttributes(attribute.String("policy", policy)))
}

// RecordEvictions records n slots leaving the buffer.
func (m *MulticastMetrics) RecordEvictions(ctx context.Context, policy string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.evictions.Add(ctx, int64(n), metric.WithAttributes(attribute.String("policy", policy)))
}

// RecordRejection records a refused call with its reason.
func (m *MulticastMetrics) RecordRejection(ctx context.Context, policy, reason string) {
	if m == nil {
		return
	}
	m.rejections.Add(ctx, 1, metric.WithAttributes(
		attribute.String("policy", policy),
		attribute.String("reason", reason),
	))
}

// CursorOpened increments the open cursor gauge.
func (m *MulticastMetrics) CursorOpened(ctx context.Context, policy string) {
	if m == nil {
		return
	}
	m.activeCursors.Add(ctx, 1, metric.WithAttributes(attribute.String("policy", policy)))
}

// CursorClosed decrements the open cursor gauge by n.
func (m *MulticastMetrics) CursorClosed(ctx context.Context, policy string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.activeCursors.Add(ctx, -int64(n), metric.WithAttributes(attribute.String("policy", policy)))
}
