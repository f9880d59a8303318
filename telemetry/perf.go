package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/snakepit/sim"
)

// Phase is a timed slice of a host tick. The first five are the engine
// steps, in the order the engine reports them.
type Phase uint8

const (
	PhaseMovement Phase = iota
	PhaseCollision
	PhasePellets
	PhaseSteering
	PhaseCamera
	PhaseAutopilot
	PhaseTelemetry

	NumPhases
)

// noPhase marks time that belongs to no tracked phase.
const noPhase = NumPhases

var phaseNames = [NumPhases]string{
	PhaseMovement:  sim.StepMovement,
	PhaseCollision: sim.StepCollision,
	PhasePellets:   sim.StepPellets,
	PhaseSteering:  sim.StepSteering,
	PhaseCamera:    sim.StepCamera,
	PhaseAutopilot: "autopilot",
	PhaseTelemetry: "telemetry",
}

func (ph Phase) String() string {
	if ph < NumPhases {
		return phaseNames[ph]
	}
	return "none"
}

// PhaseByName resolves an engine step name.
func PhaseByName(name string) (Phase, bool) {
	for ph, n := range phaseNames {
		if n == name {
			return Phase(ph), true
		}
	}
	return noPhase, false
}

// tickSample is the timing of one host tick.
type tickSample struct {
	total  time.Duration
	wait   time.Duration // pacing wait before the tick
	phases [NumPhases]time.Duration
}

// PerfCollector times host ticks and their phases over a rolling window.
// It implements sim.PhaseRecorder so the engine can mark its own steps.
type PerfCollector struct {
	now func() time.Time

	ring  []tickSample
	next  int
	count int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inTick     bool
	wait       time.Duration
}

var _ sim.PhaseRecorder = (*PerfCollector)(nil)

// NewPerfCollector creates a collector averaging over windowSize ticks.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize <= 0 {
		windowSize = 60
	}
	return &PerfCollector{
		now:   now,
		ring:  make([]tickSample, windowSize),
		phase: noPhase,
	}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	t := p.now()
	p.cur = tickSample{wait: p.wait}
	p.wait = 0
	p.tickStart = t
	p.phaseStart = t
	p.phase = noPhase
	p.inTick = true
}

// EnterPhase closes the running phase and starts timing ph.
func (p *PerfCollector) EnterPhase(ph Phase) {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.phase = ph
	p.phaseStart = t
}

// StartPhase implements sim.PhaseRecorder. Unknown names end the running
// phase without starting a new one.
func (p *PerfCollector) StartPhase(name string) {
	ph, _ := PhaseByName(name)
	p.EnterPhase(ph)
}

// EndTick closes the running phase and stores the tick in the window.
func (p *PerfCollector) EndTick() {
	if !p.inTick {
		return
	}
	t := p.now()
	p.closePhase(t)
	p.cur.total = t.Sub(p.tickStart)
	p.inTick = false
	p.phase = noPhase

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

func (p *PerfCollector) closePhase(t time.Time) {
	if p.phase < NumPhases {
		p.cur.phases[p.phase] += t.Sub(p.phaseStart)
	}
}

// RecordWait adds time spent blocked on realtime pacing. It is charged to
// the next tick.
func (p *PerfCollector) RecordWait(d time.Duration) {
	if d > 0 {
		p.wait += d
	}
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks    int
	AvgTick  time.Duration
	P95Tick  time.Duration
	MaxTick  time.Duration
	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of AvgTick, 0 to 100

	Capacity float64       // unpaced ticks per second at AvgTick
	AvgWait  time.Duration // realtime pacing wait per tick
	BusyPct  float64       // AvgTick share of each paced slot
}

// Stats computes statistics over the window. An empty window yields the
// zero PerfStats.
func (p *PerfCollector) Stats() PerfStats {
	if p.count == 0 {
		return PerfStats{}
	}

	totals := make([]float64, p.count)
	var phaseSum [NumPhases]time.Duration
	var waitSum time.Duration
	for i, s := range p.ring[:p.count] {
		totals[i] = float64(s.total)
		waitSum += s.wait
		for ph, d := range s.phases {
			phaseSum[ph] += d
		}
	}
	slices.Sort(totals)

	n := time.Duration(p.count)
	st := PerfStats{
		Ticks:   p.count,
		AvgTick: time.Duration(stat.Mean(totals, nil)),
		P95Tick: time.Duration(stat.Quantile(0.95, stat.Empirical, totals, nil)),
		MaxTick: time.Duration(totals[p.count-1]),
		AvgWait: waitSum / n,
	}
	for ph, sum := range phaseSum {
		st.PhaseAvg[ph] = sum / n
		if st.AvgTick > 0 {
			st.PhasePct[ph] = float64(st.PhaseAvg[ph]) / float64(st.AvgTick) * 100
		}
	}
	if st.AvgTick > 0 {
		st.Capacity = float64(time.Second) / float64(st.AvgTick)
	}
	if slot := st.AvgTick + st.AvgWait; slot > 0 {
		st.BusyPct = float64(st.AvgTick) / float64(slot) * 100
	}
	return st
}

// Pct returns the share of the average tick spent in ph.
func (s PerfStats) Pct(ph Phase) float64 {
	if ph >= NumPhases {
		return 0
	}
	return s.PhasePct[ph]
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("capacity", s.Capacity),
		slog.Float64("busy_pct", s.BusyPct),
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_pct", s.PhasePct[ph]))
	}
	return slog.GroupValue(attrs...)
}

// LogStats logs the perf stats using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// PerfStatsCSV is the CSV row for one perf window.
type PerfStatsCSV struct {
	WindowEnd    uint64  `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	P95TickUS    int64   `csv:"p95_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	Capacity     float64 `csv:"capacity_tps"`
	AvgWaitUS    int64   `csv:"avg_wait_us"`
	BusyPct      float64 `csv:"busy_pct"`
	MovementPct  float64 `csv:"movement_pct"`
	CollisionPct float64 `csv:"collision_pct"`
	PelletsPct   float64 `csv:"pellets_pct"`
	SteeringPct  float64 `csv:"steering_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	AutopilotPct float64 `csv:"autopilot_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts stats to a CSV row.
func (s PerfStats) ToCSV(windowEnd uint64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTick.Microseconds(),
		P95TickUS:    s.P95Tick.Microseconds(),
		MaxTickUS:    s.MaxTick.Microseconds(),
		Capacity:     s.Capacity,
		AvgWaitUS:    s.AvgWait.Microseconds(),
		BusyPct:      s.BusyPct,
		MovementPct:  s.PhasePct[PhaseMovement],
		CollisionPct: s.PhasePct[PhaseCollision],
		PelletsPct:   s.PhasePct[PhasePellets],
		SteeringPct:  s.PhasePct[PhaseSteering],
		CameraPct:    s.PhasePct[PhaseCamera],
		AutopilotPct: s.PhasePct[PhaseAutopilot],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
