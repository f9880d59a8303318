package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick uint64  `csv:"-"`
	WindowEndTick   uint64  `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Game            int     `csv:"game"`
	Phase           string  `csv:"phase"`

	// Player state at window end
	PlayerLength float64 `csv:"player_length"`
	PlayerScore  int     `csv:"player_score"`
	CameraZoom   float64 `csv:"camera_zoom"`

	// Events during window
	PlayerPellets int `csv:"player_pellets"`
	AIPellets     int `csv:"ai_pellets"`
	BoostStarts   int `csv:"boost_starts"`
	BoostTicks    int `csv:"boost_ticks"`
	GameOvers     int `csv:"game_overs"`

	// Population at window end
	AICount     int `csv:"ai"`
	PelletCount int `csv:"pellets"`

	// AI length distribution (sampled at window end)
	AILengthMean float64 `csv:"ai_length_mean"`
	AILengthStd  float64 `csv:"ai_length_std"`
	AILengthP10  float64 `csv:"ai_length_p10"`
	AILengthP50  float64 `csv:"ai_length_p50"`
	AILengthP90  float64 `csv:"ai_length_p90"`
	AILengthMax  float64 `csv:"ai_length_max"`
}

// Distribution summarizes a sample.
type Distribution struct {
	N    int
	Mean float64
	Std  float64 // sample standard deviation, 0 for fewer than two values
	P10  float64
	P50  float64
	P90  float64
	Min  float64
	Max  float64
}

// ComputeDistribution calculates mean, spread and empirical quantiles.
// The input is not modified. An empty input yields the zero Distribution.
func ComputeDistribution(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Distribution{
		N:    n,
		Mean: stat.Mean(sorted, nil),
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Min:  sorted[0],
		Max:  sorted[n-1],
	}
	if n > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// LogValue implements slog.LogValuer for structured logging.
func (d Distribution) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("n", d.N),
		slog.Float64("mean", d.Mean),
		slog.Float64("std", d.Std),
		slog.Float64("p10", d.P10),
		slog.Float64("p50", d.P50),
		slog.Float64("p90", d.P90),
		slog.Float64("min", d.Min),
		slog.Float64("max", d.Max),
	)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("window_start", s.WindowStartTick),
		slog.Uint64("window_end", s.WindowEndTick),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("game", s.Game),
		slog.String("phase", s.Phase),
		slog.Float64("player_length", s.PlayerLength),
		slog.Int("player_score", s.PlayerScore),
		slog.Float64("camera_zoom", s.CameraZoom),
		slog.Int("player_pellets", s.PlayerPellets),
		slog.Int("ai_pellets", s.AIPellets),
		slog.Int("boost_starts", s.BoostStarts),
		slog.Int("boost_ticks", s.BoostTicks),
		slog.Int("game_overs", s.GameOvers),
		slog.Int("ai", s.AICount),
		slog.Int("pellets", s.PelletCount),
		slog.Float64("ai_length_mean", s.AILengthMean),
		slog.Float64("ai_length_std", s.AILengthStd),
		slog.Float64("ai_length_p10", s.AILengthP10),
		slog.Float64("ai_length_p50", s.AILengthP50),
		slog.Float64("ai_length_p90", s.AILengthP90),
		slog.Float64("ai_length_max", s.AILengthMax),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"game", s.Game,
		"phase", s.Phase,
		"player_length", s.PlayerLength,
		"player_score", s.PlayerScore,
		"player_pellets", s.PlayerPellets,
		"ai_pellets", s.AIPellets,
		"boost_starts", s.BoostStarts,
		"game_overs", s.GameOvers,
		"ai_length_p50", s.AILengthP50,
		"ai_length_max", s.AILengthMax,
	)
}
