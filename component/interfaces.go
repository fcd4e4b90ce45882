package component

import "context"

// HealthStatus is the coarse state reported by Health.
type HealthStatus string

// A shared sequence is healthy while it can serve cursors, degraded once its
// producer has faulted and unhealthy after disposal.
const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one component's entry in Registry.HealthAll.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a resource a Registry starts and stops, typically a shared
// sequence that lives as long as the process.
type Component interface {
	// Name must be unique within a Registry.
	Name() string
	Start(ctx context.Context) error
	// Stop releases the resource. For a sequence this disposes it.
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is the one-line self report logged once components are up.
type Description struct {
	// Name defaults to the component's Name() when empty.
	Name string
	// Type is e.g. "sequence".
	Type string
	// Details is e.g. "policy=memoize(2) cursors=3 tail=10 buffered=10".
	Details string
}

// Describable is implemented by components that can report a Description.
type Describable interface {
	Describe() Description
}
