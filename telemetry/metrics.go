package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/sim"
)

// Metrics exposes simulation gauges and counters on a private registry.
// Labels are bounded: the eater label is only ever "player" or "ai".
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	tickDuration prometheus.Histogram
	ticks        prometheus.Counter
	pelletsEaten *prometheus.CounterVec
	gamesOver    prometheus.Counter
	runScore     prometheus.Histogram

	playerLength prometheus.Gauge
	playerScore  prometheus.Gauge
	aiSnakes     prometheus.Gauge
	pellets      prometheus.Gauge
	cameraZoom   prometheus.Gauge
}

// NewMetrics creates the metric set and registers it with a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		tickDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "snakepit_tick_duration_seconds",
			Help:    "Time spent in one simulation tick",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.005},
		}),
		ticks: f.NewCounter(prometheus.CounterOpts{
			Name: "snakepit_ticks_total",
			Help: "Simulation ticks run while playing",
		}),
		pelletsEaten: f.NewCounterVec(prometheus.CounterOpts{
			Name: "snakepit_pellets_eaten_total",
			Help: "Pellets consumed",
		}, []string{"eater"}),
		gamesOver: f.NewCounter(prometheus.CounterOpts{
			Name: "snakepit_games_over_total",
			Help: "Games ended by a lethal collision",
		}),
		runScore: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "snakepit_run_score",
			Help:    "Final score of finished games",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		playerLength: f.NewGauge(prometheus.GaugeOpts{
			Name: "snakepit_player_length",
			Help: "Current player target length",
		}),
		playerScore: f.NewGauge(prometheus.GaugeOpts{
			Name: "snakepit_player_score",
			Help: "Current player score",
		}),
		aiSnakes: f.NewGauge(prometheus.GaugeOpts{
			Name: "snakepit_ai_snakes",
			Help: "AI snakes in the arena",
		}),
		pellets: f.NewGauge(prometheus.GaugeOpts{
			Name: "snakepit_pellets",
			Help: "Pellets in the arena",
		}),
		cameraZoom: f.NewGauge(prometheus.GaugeOpts{
			Name: "snakepit_camera_zoom",
			Help: "Current camera zoom",
		}),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveTick records one playing tick.
func (m *Metrics) ObserveTick(d time.Duration, w *sim.World, events []sim.Event) {
	if m == nil {
		return
	}
	m.tickDuration.Observe(d.Seconds())
	m.ticks.Inc()

	for _, ev := range events {
		switch ev.Kind {
		case sim.EventPelletEaten:
			eater := "ai"
			if ev.SnakeID == components.PlayerID {
				eater = "player"
			}
			m.pelletsEaten.WithLabelValues(eater).Inc()
		case sim.EventGameOver:
			m.gamesOver.Inc()
		}
	}

	m.playerLength.Set(w.Player.Length)
	m.playerScore.Set(float64(w.Player.Score))
	m.aiSnakes.Set(float64(len(w.AI)))
	m.pellets.Set(float64(len(w.Pellets)))
	m.cameraZoom.Set(w.Camera.Zoom)
}

// ObserveRun records a finished game.
func (m *Metrics) ObserveRun(r RunRecord) {
	if m == nil {
		return
	}
	m.runScore.Observe(float64(r.Score))
}

// Handler returns a router serving /metrics and /health.
func (m *Metrics) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return r
}

// Serve runs the metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           m.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("metrics server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down metrics server: %w", err)
		}
		return nil
	}
}
