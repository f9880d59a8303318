package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/sim"
)

func TestRunTrackerLifecycle(t *testing.T) {
	rt := NewRunTracker(1.0 / 60)
	w := &sim.World{Player: components.Snake{ID: components.PlayerID, Length: 10}}

	// Observing with no run is a no-op
	rt.Observe(w, []sim.Event{{Kind: sim.EventPelletEaten, SnakeID: components.PlayerID}})
	if _, ok := rt.End(w); ok {
		t.Fatal("End without Begin returned a record")
	}

	rt.Begin(1, 42)
	if !rt.Active() {
		t.Fatal("tracker not active after Begin")
	}

	w.Tick = 1
	w.Player.Length = 22
	w.Player.Boosting = true
	rt.Observe(w, []sim.Event{
		{Kind: sim.EventBoostStarted, SnakeID: components.PlayerID},
		{Kind: sim.EventPelletEaten, SnakeID: components.PlayerID},
		{Kind: sim.EventPelletEaten, SnakeID: "ai-1"},
	})

	w.Tick = 120
	w.Player.Length = 15
	w.Player.Boosting = false
	w.Result = &sim.Result{Score: 5, Length: 15, Ticks: 120}
	rt.Observe(w, []sim.Event{{Kind: sim.EventGameOver, SnakeID: components.PlayerID}})

	rec, ok := rt.End(w)
	if !ok {
		t.Fatal("End returned no record")
	}
	if rt.Active() {
		t.Error("tracker still active after End")
	}

	if rec.Game != 1 || rec.Seed != 42 || rec.Ticks != 120 || !rec.Died {
		t.Errorf("record = %+v", rec)
	}
	if math.Abs(rec.DurationSec-2) > 1e-9 {
		t.Errorf("duration = %v, want 2", rec.DurationSec)
	}
	if rec.Score != 5 || rec.FinalLength != 15 || rec.PeakLength != 22 {
		t.Errorf("score %d final %v peak %v", rec.Score, rec.FinalLength, rec.PeakLength)
	}
	if rec.PelletsEaten != 1 || rec.AIPelletsEaten != 1 || rec.BoostStarts != 1 || rec.BoostTicks != 1 {
		t.Errorf("counters = %+v", rec)
	}
}

func TestRunTrackerUnfinishedGame(t *testing.T) {
	rt := NewRunTracker(1.0 / 60)
	rt.Begin(3, 7)

	w := &sim.World{Tick: 30, Player: components.Snake{Length: 12, Score: 2}}
	rec, ok := rt.End(w)
	if !ok || rec.Died || rec.Score != 2 || rec.FinalLength != 12 {
		t.Errorf("record = %+v, ok = %v", rec, ok)
	}
}

func TestSummarizeScores(t *testing.T) {
	runs := []RunRecord{{Score: 4}, {Score: 8}, {Score: 6}}
	d := SummarizeScores(runs)
	if d.N != 3 || d.Mean != 6 || d.P50 != 6 || d.Max != 8 {
		t.Errorf("summary = %+v", d)
	}
}
