// Package game hosts the simulation: it owns the current world, drives the
// menu, play and game over cycle, and feeds telemetry.
package game

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/config"
	"github.com/pthm-cable/snakepit/scene"
	"github.com/pthm-cable/snakepit/sim"
	"github.com/pthm-cable/snakepit/telemetry"
)

// Options configures optional game features.
type Options struct {
	Seed           uint64
	LogStats       bool                              // Log window stats via slog
	StatsWindowSec float64                           // Overrides telemetry.stats_window when > 0
	OutputDir      string                            // CSV output directory, empty disables
	MaxGames       int                               // Stop restarting after this many games, 0 = unlimited
	Metrics        *telemetry.Metrics                // Optional Prometheus metrics
	StatsCallback  func(stats telemetry.WindowStats) // Called on every window flush
}

// Game holds the host state around the simulation world.
type Game struct {
	cfg    *config.Config
	engine *sim.Engine
	world  sim.World
	pilot  *Pilot
	scene  *scene.Scene
	seed   uint64

	tick      uint64 // host ticks across all games
	games     int    // games started
	restartIn int    // ticks left before the next game starts
	maxGames  int
	runs      []telemetry.RunRecord

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	runTracker    *telemetry.RunTracker
	outputManager *telemetry.OutputManager
	metrics       *telemetry.Metrics
	logStats      bool
	statsCallback func(stats telemetry.WindowStats)
}

// NewGame creates a game with default options.
func NewGame(cfg *config.Config) (*Game, error) {
	return NewGameWithOptions(cfg, Options{})
}

// NewGameWithOptions creates a game in the menu phase.
func NewGameWithOptions(cfg *config.Config, opts Options) (*Game, error) {
	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config: %w", err)
	}

	engine := sim.NewEngine(sim.ParamsFromConfig(cfg))
	g := &Game{
		cfg:           cfg,
		engine:        engine,
		world:         engine.NewWorld(opts.Seed),
		pilot:         NewPilot(cfg),
		scene:         scene.New(scene.DefaultStyle()),
		seed:          opts.Seed,
		maxGames:      opts.MaxGames,
		collector:     telemetry.NewCollector(statsWindow, cfg.Derived.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		runTracker:    telemetry.NewRunTracker(cfg.Derived.DT),
		outputManager: om,
		metrics:       opts.Metrics,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	engine.SetRecorder(g.perfCollector)
	return g, nil
}

// Update runs one tick with player input.
func (g *Game) Update(in components.Input) {
	g.perfCollector.StartTick()
	g.step(in)
	g.perfCollector.EndTick()
}

// UpdateHeadless runs one tick with the autopilot steering the player.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartTick()
	var in components.Input
	if g.world.Phase == components.PhasePlaying {
		g.perfCollector.EnterPhase(telemetry.PhaseAutopilot)
		in = g.pilot.Decide(&g.world)
	}
	g.step(in)
	g.perfCollector.EndTick()
}

// step advances the phase machine by one host tick.
func (g *Game) step(in components.Input) {
	switch g.world.Phase {
	case components.PhaseMenu:
		g.startGame()

	case components.PhasePlaying:
		start := time.Now()
		next, events := g.engine.Tick(g.world, in, g.cfg.Derived.DT)
		g.world = next

		g.perfCollector.EnterPhase(telemetry.PhaseTelemetry)
		g.collector.RecordEvents(events)
		if g.world.Player.Boosting {
			g.collector.RecordBoostTick()
		}
		g.runTracker.Observe(&g.world, events)
		g.metrics.ObserveTick(time.Since(start), &g.world, events)

		if g.world.Phase == components.PhaseGameOver {
			g.finishRun()
			g.restartIn = g.cfg.Derived.RestartTicks
		}

	case components.PhaseGameOver:
		if g.restartIn > 0 {
			g.restartIn--
			break
		}
		if g.maxGames > 0 && g.games >= g.maxGames {
			break
		}
		w, err := g.engine.Restart(g.world)
		if err != nil {
			slog.Error("restart failed", "error", err)
			break
		}
		g.world = w
	}

	g.tick++
	g.flushTelemetry()
}

// startGame moves the menu world into play and begins tracking it.
func (g *Game) startGame() {
	w, err := g.engine.Start(g.world)
	if err != nil {
		slog.Error("start failed", "error", err)
		return
	}
	g.world = w
	g.games++
	g.runTracker.Begin(g.games, g.seed)
	slog.Debug("game started", "game", g.games, "seed", g.seed)
}

// Tick returns the number of host ticks run so far.
func (g *Game) Tick() uint64 {
	return g.tick
}

// Games returns the number of games started.
func (g *Game) Games() int {
	return g.games
}

// Done reports whether the game limit has been reached and the last game
// is over.
func (g *Game) Done() bool {
	return g.maxGames > 0 && g.games >= g.maxGames && g.world.Phase == components.PhaseGameOver
}

// World returns the current world snapshot.
func (g *Game) World() sim.World {
	return g.world
}

// Runs returns the records of finished games.
func (g *Game) Runs() []telemetry.RunRecord {
	return g.runs
}

// DrawList syncs the scene with the current world and returns the visible
// draw items, reusing dst's storage.
func (g *Game) DrawList(dst []scene.DrawItem) []scene.DrawItem {
	g.scene.Sync(&g.world)
	return g.scene.DrawList(g.world.Camera, dst)
}

// Close records any game still in progress and closes output files.
func (g *Game) Close() error {
	g.finishRun()
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
