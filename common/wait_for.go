package common

import (
	"context"
)

// StateWaiter is anything that can block until a matching gateway event arrives.
type StateWaiter interface {
	WaitFor(context.Context, func(any) bool) any
}

// WaitFor is a wrapper around s.WaitFor that checks for a specific type
// and accepts a filter function based on that, avoiding type casting in the filter function.
// ok is false if ctx expired before a matching event arrived.
func WaitFor[T any](ctx context.Context, s StateWaiter, filter func(t T) bool) (t T, ok bool) {
	v := s.WaitFor(ctx, func(i any) bool {
		if t, ok := i.(T); ok {
			return filter(t)
		}
		return false
	})

	if v == nil {
		return t, false
	}

	t, ok = v.(T)
	return t, ok
}
