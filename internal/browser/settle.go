package browser

import (
	"context"
	"time"
)

// Settle pauses for d, capped at max when max > 0. It returns early with
// ctx.Err() if the context is done first.
//
// The schedule widget exposes no render-complete signal after a click, so a
// fixed pause is still needed on top of the per-tab marker waits.
func Settle(ctx context.Context, d, max time.Duration) error {
	if max > 0 && d > max {
		d = max
	}
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
