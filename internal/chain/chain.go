// Package chain runs fetches against the source one at a time. Every unit
// finishes, and its result is handed to the accumulator, before the next
// unit starts; nothing here ever runs two units concurrently.
package chain

import (
	"context"
	"fmt"
	"time"
)

// Task is one unit of work, typically a single HTTP request.
type Task[T any] func(ctx context.Context) (T, error)

type options struct {
	delay time.Duration
}

type Option func(*options)

// WithDelay pauses between consecutive tasks.
func WithDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.delay = d
		}
	}
}

// Run executes tasks in order and calls onSettled with each result before
// starting the next task. It stops at the first task or accumulator error and
// returns it wrapped with the task's position; results accumulated so far
// are left with the caller.
func Run[T any](ctx context.Context, tasks []Task[T], onSettled func(T) error, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		if i > 0 && o.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(o.delay):
			}
		}

		result, err := task(ctx)
		if err != nil {
			return fmt.Errorf("task %d/%d: %w", i+1, len(tasks), err)
		}

		if onSettled == nil {
			continue
		}
		if err := onSettled(result); err != nil {
			return fmt.Errorf("task %d/%d: %w", i+1, len(tasks), err)
		}
	}

	return nil
}

// Collect runs tasks like Run and returns the results in task order. On
// error it returns what was collected before the failing task.
func Collect[T any](ctx context.Context, tasks []Task[T], opts ...Option) ([]T, error) {
	out := make([]T, 0, len(tasks))
	err := Run(ctx, tasks, func(v T) error {
		out = append(out, v)
		return nil
	}, opts...)

	return out, err
}
