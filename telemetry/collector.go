// Package telemetry provides window statistics, per-game run records,
// performance timing, CSV output and Prometheus metrics for the arena.
package telemetry

import (
	"math"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/sim"
)

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks uint64
	dt                  float64

	// Current window tracking
	windowStartTick uint64

	// Event counters for current window
	playerPellets int
	aiPellets     int
	boostStarts   int
	boostTicks    int
	gameOvers     int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := uint64(1)
	if dt > 0 && windowDurationSec/dt >= 1 {
		ticksPerWindow = uint64(math.Round(windowDurationSec / dt))
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordEvents counts the events of one tick.
func (c *Collector) RecordEvents(events []sim.Event) {
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventPelletEaten:
			if ev.SnakeID == components.PlayerID {
				c.playerPellets++
			} else {
				c.aiPellets++
			}
		case sim.EventBoostStarted:
			c.boostStarts++
		case sim.EventGameOver:
			c.gameOvers++
		}
	}
}

// RecordBoostTick counts one tick spent boosting.
func (c *Collector) RecordBoostTick() {
	c.boostTicks++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick uint64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// currentTick counts host ticks across games; w is sampled for end-of-window
// state.
func (c *Collector) Flush(currentTick uint64, game int, w *sim.World) WindowStats {
	aiLengths := make([]float64, 0, len(w.AI))
	for i := range w.AI {
		aiLengths = append(aiLengths, w.AI[i].Length)
	}
	dist := ComputeDistribution(aiLengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,
		Game:            game,
		Phase:           w.Phase.String(),

		PlayerLength: w.Player.Length,
		PlayerScore:  w.Player.Score,
		CameraZoom:   w.Camera.Zoom,

		PlayerPellets: c.playerPellets,
		AIPellets:     c.aiPellets,
		BoostStarts:   c.boostStarts,
		BoostTicks:    c.boostTicks,
		GameOvers:     c.gameOvers,

		AICount:     len(w.AI),
		PelletCount: len(w.Pellets),

		AILengthMean: dist.Mean,
		AILengthStd:  dist.Std,
		AILengthP10:  dist.P10,
		AILengthP50:  dist.P50,
		AILengthP90:  dist.P90,
		AILengthMax:  dist.Max,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.playerPellets = 0
	c.aiPellets = 0
	c.boostStarts = 0
	c.boostTicks = 0
	c.gameOvers = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() uint64 {
	return c.windowDurationTicks
}
