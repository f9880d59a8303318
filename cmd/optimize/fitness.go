package main

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/pthm-cable/snakepit/config"
	"github.com/pthm-cable/snakepit/game"
	"github.com/pthm-cable/snakepit/telemetry"
)

// FitnessEvaluator runs headless games and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    uint64
	seeds       []uint64
	baseConfig  *config.Config
	statsWindow float64

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestRuns    []telemetry.RunRecord
	lastQuality float64 // quality from most recent Evaluate call
	lastScore   float64 // mean score from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks uint64, seeds []uint64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		statsWindow: 10.0,
		bestFitness: math.Inf(1),
	}
}

// BestRuns returns the per-seed runs of the best evaluation.
func (fe *FitnessEvaluator) BestRuns() []telemetry.RunRecord {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return slices.Clone(fe.bestRuns)
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// LastScore returns the mean score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// runResult holds the results from a single game.
type runResult struct {
	run         telemetry.RunRecord
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality, totalScore float64
	runs := make([]telemetry.RunRecord, len(results))
	for i, r := range results {
		totalFitness += fe.computeFitness(r)
		totalQuality += fe.computeQuality(r)
		totalScore += float64(r.run.Score)
		runs[i] = r.run
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestRuns = runs
	}
	fe.lastQuality = totalQuality / n
	fe.lastScore = totalScore / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation plays a single game until death or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	var result runResult
	g, err := game.NewGameWithOptions(cfg, game.Options{
		Seed:           seed,
		MaxGames:       1,
		StatsWindowSec: fe.statsWindow,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		slog.Error("failed to create game", "seed", seed, "error", err)
		return result
	}

	if err := g.Run(context.Background(), game.RunOptions{MaxTicks: fe.maxTicks}); err != nil {
		slog.Error("run failed", "seed", seed, "error", err)
	}
	if err := g.Close(); err != nil {
		slog.Error("failed to close game", "seed", seed, "error", err)
	}
	if runs := g.Runs(); len(runs) > 0 {
		result.run = runs[0]
	}
	return result
}

// copyConfig creates a deep copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Pellets.Palette = slices.Clone(fe.baseConfig.Pellets.Palette)
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(score × (1.0 + 0.2 × quality))
// Score dominates; quality adds up to 20% to separate configs with similar
// scores.
func (fe *FitnessEvaluator) computeFitness(r runResult) float64 {
	return -(float64(r.run.Score) * (1.0 + 0.2*fe.computeQuality(r)))
}

// Quality component weights.
const (
	qualityWeightSurvival = 0.6
	qualityWeightBoost    = 0.4
)

// computeQuality computes run quality in [0, 1]: how long the pilot lived
// and how much of its eating happened without burning length.
func (fe *FitnessEvaluator) computeQuality(r runResult) float64 {
	if fe.maxTicks == 0 {
		return 0
	}
	survival := clamp01(float64(r.run.Ticks) / float64(fe.maxTicks))

	var pellets, boostTicks int
	for _, w := range r.windowStats {
		pellets += w.PlayerPellets
		boostTicks += w.BoostTicks
	}
	// Pellets gained per length unit spent boosting, saturating at 1.
	boostScore := 1.0
	if boostTicks > 0 {
		drained := float64(boostTicks) * fe.baseConfig.Snake.BoostDrainRate * fe.baseConfig.Derived.DT
		boostScore = clamp01(float64(pellets) / (float64(pellets) + drained))
	}

	return clamp01(qualityWeightSurvival*survival + qualityWeightBoost*boostScore)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
