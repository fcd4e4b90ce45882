package component

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/seqshare/logger"
)

// Lazy defers building a component until it is first started. This lets a
// registry hold components whose construction depends on configuration
// that is only known at start time.
type Lazy[C Component] struct {
	name    string
	build   func(ctx context.Context) (C, error)
	mu      sync.RWMutex
	inner   C
	built   bool
	lastErr error
}

var (
	_ Component   = (*Lazy[Component])(nil)
	_ Describable = (*Lazy[Component])(nil)
)

// NewLazy creates a lazy component named name.
func NewLazy[C Component](name string, build func(context.Context) (C, error)) *Lazy[C] {
	return &Lazy[C]{name: name, build: build}
}

// Name returns the component name.
func (l *Lazy[C]) Name() string { return l.name }

// Start builds the inner component on first call and starts it. A failed
// build is retried on the next Start.
func (l *Lazy[C]) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.built {
		if l.build == nil {
			return fmt.Errorf("no builder for component: %s", l.name)
		}
		inner, err := l.build(ctx)
		if err != nil {
			l.lastErr = err
			return fmt.Errorf("failed to build %s: %w", l.name, err)
		}
		l.inner, l.built, l.lastErr = inner, true, nil
		logger.Get("component").Debug("Lazy component built", logger.Fields(logger.FieldComponent, l.name))
	}
	return l.inner.Start(ctx)
}

// Stop stops the inner component if it was ever built.
func (l *Lazy[C]) Stop(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.built {
		return nil
	}
	return l.inner.Stop(ctx)
}

// Health reports unhealthy until the inner component is built.
func (l *Lazy[C]) Health(ctx context.Context) Health {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if !l.built {
		h := Health{Name: l.name, Status: StatusUnhealthy, Message: "not started"}
		if l.lastErr != nil {
			h.Message = l.lastErr.Error()
		}
		return h
	}
	return l.inner.Health(ctx)
}

// Get returns the inner component and whether it has been built.
func (l *Lazy[C]) Get() (C, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.inner, l.built
}

// Describe forwards to the inner component once it is built and describes
// itself as a pending lazy component before that.
func (l *Lazy[C]) Describe() Description {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.built {
		if d, ok := any(l.inner).(Describable); ok {
			return d.Describe()
		}
	}
	return Description{Name: l.name, Type: "lazy", Details: "not built"}
}
