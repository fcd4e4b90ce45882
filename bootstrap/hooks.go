package bootstrap

import (
	"context"
	"fmt"
)

// Hook runs at a fixed point of RunTask.
type Hook func(ctx context.Context) error

// OnStart adds hooks that run once every component has started, before the
// ready check and the task.
func (a *App[C]) OnStart(hooks ...Hook) {
	a.onStart = append(a.onStart, hooks...)
}

// OnStop adds hooks that run after the registry has stopped every component.
// seqshare flushes its OTLP exporters here so the final dispose is exported.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks stops at the first failing hook and names it by position.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, hook := range hooks {
		if err := hook(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}
