package game

import (
	"log/slog"
)

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.games, &g.world)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// finishRun closes the tracked run, if any, and reports it.
func (g *Game) finishRun() {
	rec, ok := g.runTracker.End(&g.world)
	if !ok {
		return
	}
	g.runs = append(g.runs, rec)
	g.metrics.ObserveRun(rec)

	if g.logStats {
		slog.Info("run", "record", rec)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteRun(rec); err != nil {
			slog.Error("failed to write run", "error", err)
		}
	}
}
