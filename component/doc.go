// Package component defines the lifecycle interface for long-lived
// resources and a registry that starts them in registration order and
// stops them in reverse.
//
// # Interfaces
//
//   - Component: Name, Start, Stop and Health
//   - Describable: optional one-line description for startup summaries
//
// Lazy wraps a component whose construction is deferred to Start.
package component
