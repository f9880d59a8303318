package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/sim"
)

func TestMetricsObserveTick(t *testing.T) {
	m := NewMetrics()
	w := testWorld()

	m.ObserveTick(200*time.Microsecond, w, []sim.Event{
		{Kind: sim.EventPelletEaten, SnakeID: components.PlayerID},
		{Kind: sim.EventPelletEaten, SnakeID: "ai-0"},
		{Kind: sim.EventPelletEaten, SnakeID: "ai-4"},
	})
	m.ObserveTick(200*time.Microsecond, w, []sim.Event{{Kind: sim.EventGameOver}})

	if got := testutil.ToFloat64(m.ticks); got != 2 {
		t.Errorf("ticks = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.pelletsEaten.WithLabelValues("player")); got != 1 {
		t.Errorf("player pellets = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.pelletsEaten.WithLabelValues("ai")); got != 2 {
		t.Errorf("ai pellets = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.gamesOver); got != 1 {
		t.Errorf("games over = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.playerLength); got != 14 {
		t.Errorf("player length = %v, want 14", got)
	}
	if got := testutil.ToFloat64(m.pellets); got != 300 {
		t.Errorf("pellets = %v, want 300", got)
	}
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveTick(time.Millisecond, testWorld(), nil)
	m.ObserveRun(RunRecord{Score: 3})
	if m.Registry() != nil {
		t.Error("nil metrics returned a registry")
	}
}

func TestMetricsHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRun(RunRecord{Score: 12})
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "OK" {
		t.Errorf("/health = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/metrics status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), "snakepit_run_score_count 1") {
		t.Errorf("/metrics missing run score histogram:\n%s", body)
	}
}
