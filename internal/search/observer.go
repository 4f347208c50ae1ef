package search

import "context"

// WithContext aborts the run once ctx is done and otherwise defers to next.
// A paused run is re-checked on every observer call, so cancelling ctx also
// ends a pause. A nil next always continues.
func WithContext(ctx context.Context, next Observer) Observer {
	return func() Signal {
		if ctx.Err() != nil {
			return Abort
		}
		if next == nil {
			return Continue
		}
		return next()
	}
}

// Counting wraps next and increments *steps on every call.
func Counting(steps *int, next Observer) Observer {
	return func() Signal {
		*steps++
		if next == nil {
			return Continue
		}
		return next()
	}
}
