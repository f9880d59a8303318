package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// RunOptions bounds a headless run.
type RunOptions struct {
	MaxTicks uint64 // 0 = unlimited
	Realtime bool   // Pace ticks at sim.ticks_per_second
}

// Run drives the autopilot until ctx is cancelled, MaxTicks is reached or
// every allowed game has ended. Cancellation is a normal stop.
func (g *Game) Run(ctx context.Context, opts RunOptions) error {
	var limiter *rate.Limiter
	if opts.Realtime {
		limiter = rate.NewLimiter(rate.Limit(g.cfg.Sim.TicksPerSecond), 1)
	}

	for {
		if ctx.Err() != nil {
			slog.Info("run cancelled", "tick", g.tick, "games", g.games)
			return nil
		}
		if limiter != nil {
			waitStart := time.Now()
			if err := limiter.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					slog.Info("run cancelled", "tick", g.tick, "games", g.games)
					return nil
				}
				return fmt.Errorf("pacing tick %d: %w", g.tick, err)
			}
			g.perfCollector.RecordWait(time.Since(waitStart))
		}

		g.UpdateHeadless()

		if opts.MaxTicks > 0 && g.tick >= opts.MaxTicks {
			slog.Info("max ticks reached", "tick", g.tick, "games", g.games)
			return nil
		}
		if g.Done() {
			slog.Info("max games reached", "tick", g.tick, "games", g.games)
			return nil
		}
	}
}
