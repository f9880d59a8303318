package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pthm-cable/snakepit/config"
	"github.com/pthm-cable/snakepit/game"
	"github.com/pthm-cable/snakepit/telemetry"
)

func main() {
	// Environment defaults from .env, if present
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// CLI flags
	configPath := flag.String("config", os.Getenv("SNAKEPIT_CONFIG"), "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Uint64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	maxGames := flag.Int("max-games", 0, "Stop after N games (0 = unlimited)")
	realtime := flag.Bool("realtime", false, "Pace ticks at sim.ticks_per_second")
	metricsAddr := flag.String("metrics-addr", os.Getenv("SNAKEPIT_METRICS_ADDR"), "Serve Prometheus metrics on this address (empty = disabled)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var metrics *telemetry.Metrics
	if *metricsAddr != "" {
		metrics = telemetry.NewMetrics()
		go func() {
			if err := metrics.Serve(ctx, *metricsAddr); err != nil {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		MaxGames:       *maxGames,
		Metrics:        metrics,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"max_games", *maxGames,
		"realtime", *realtime,
		"metrics_addr", *metricsAddr,
	)

	runErr := g.Run(ctx, game.RunOptions{MaxTicks: *maxTicks, Realtime: *realtime})
	if err := g.Close(); err != nil {
		slog.Error("failed to close game", "error", err)
	}
	if runErr != nil {
		slog.Error("run failed", "error", runErr)
		os.Exit(1)
	}

	if runs := g.Runs(); len(runs) > 0 {
		slog.Info("session summary", "games", len(runs), "score", telemetry.SummarizeScores(runs))
	}
}
