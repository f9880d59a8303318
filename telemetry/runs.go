package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/sim"
)

// RunRecord holds the statistics of one game, from start to game over.
type RunRecord struct {
	Game        int     `csv:"game"`
	Seed        uint64  `csv:"seed"`
	Ticks       uint64  `csv:"ticks"`
	DurationSec float64 `csv:"duration_sec"`
	Died        bool    `csv:"died"` // false when the session ended mid-game

	Score       int     `csv:"score"`
	FinalLength float64 `csv:"final_length"`
	PeakLength  float64 `csv:"peak_length"`

	PelletsEaten   int `csv:"pellets_eaten"`
	AIPelletsEaten int `csv:"ai_pellets_eaten"`
	BoostStarts    int `csv:"boost_starts"`
	BoostTicks     int `csv:"boost_ticks"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r RunRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("game", r.Game),
		slog.Uint64("seed", r.Seed),
		slog.Uint64("ticks", r.Ticks),
		slog.Float64("duration_sec", r.DurationSec),
		slog.Bool("died", r.Died),
		slog.Int("score", r.Score),
		slog.Float64("final_length", r.FinalLength),
		slog.Float64("peak_length", r.PeakLength),
		slog.Int("pellets_eaten", r.PelletsEaten),
		slog.Int("ai_pellets_eaten", r.AIPelletsEaten),
		slog.Int("boost_starts", r.BoostStarts),
		slog.Int("boost_ticks", r.BoostTicks),
	)
}

// RunTracker accumulates the record of the game in progress.
type RunTracker struct {
	dt      float64
	current *RunRecord
}

// NewRunTracker creates a run tracker. dt is seconds per tick.
func NewRunTracker(dt float64) *RunTracker {
	return &RunTracker{dt: dt}
}

// Begin starts a new record. Any unfinished record is discarded.
func (rt *RunTracker) Begin(game int, seed uint64) {
	rt.current = &RunRecord{Game: game, Seed: seed}
}

// Active reports whether a game is being tracked.
func (rt *RunTracker) Active() bool {
	return rt.current != nil
}

// Observe folds one tick of the world and its events into the record.
func (rt *RunTracker) Observe(w *sim.World, events []sim.Event) {
	r := rt.current
	if r == nil {
		return
	}

	r.Ticks = w.Tick
	if w.Player.Length > r.PeakLength {
		r.PeakLength = w.Player.Length
	}
	if w.Player.Boosting {
		r.BoostTicks++
	}
	for _, ev := range events {
		switch ev.Kind {
		case sim.EventPelletEaten:
			if ev.SnakeID == components.PlayerID {
				r.PelletsEaten++
			} else {
				r.AIPelletsEaten++
			}
		case sim.EventBoostStarted:
			r.BoostStarts++
		case sim.EventGameOver:
			r.Died = true
		}
	}
}

// End finalizes and returns the current record. ok is false when no game
// was being tracked.
func (rt *RunTracker) End(w *sim.World) (rec RunRecord, ok bool) {
	r := rt.current
	if r == nil {
		return RunRecord{}, false
	}
	rt.current = nil

	r.Ticks = w.Tick
	r.DurationSec = float64(w.Tick) * rt.dt
	if w.Result != nil {
		r.Score = w.Result.Score
		r.FinalLength = w.Result.Length
		r.Died = true
	} else {
		r.Score = w.Player.Score
		r.FinalLength = w.Player.Length
	}
	if r.FinalLength > r.PeakLength {
		r.PeakLength = r.FinalLength
	}
	return *r, true
}

// SummarizeScores returns the score distribution over a set of runs.
func SummarizeScores(runs []RunRecord) Distribution {
	scores := make([]float64, len(runs))
	for i, r := range runs {
		scores[i] = float64(r.Score)
	}
	return ComputeDistribution(scores)
}
