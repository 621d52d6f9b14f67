package tarot

import (
	"context"
	"time"
)

// pause lets observers animate. It returns early, with the context error, on cancellation
func (g *Game) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 || !g.hub.attached() {
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

// pauseIf pauses only when the phase is configured to be paced
func (g *Game) pauseIf(ctx context.Context, paced bool, d time.Duration) error {
	if !paced {
		return ctx.Err()
	}

	return g.pause(ctx, d)
}
