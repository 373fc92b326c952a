package util

import (
	"context"
	"time"
)

// Sleep pauses for d or until the context is cancelled, whichever comes
// first. It returns the context error on early wakeup.
func Sleep(ctx context.Context, d time.Duration) error {
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
