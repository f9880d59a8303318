package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/snakepit/camera"
	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/systems"
	"github.com/pthm-cable/snakepit/vmath"
)

// ErrInvalidTransition is returned when a phase change is requested from a
// phase that does not allow it.
var ErrInvalidTransition = errors.New("invalid phase transition")

// Step names reported to a PhaseRecorder, in tick order.
const (
	StepMovement  = "movement"
	StepCollision = "collision"
	StepPellets   = "pellets"
	StepSteering  = "steering"
	StepCamera    = "camera"
)

// PhaseRecorder is notified as each step of a tick begins.
// telemetry.PerfCollector satisfies it.
type PhaseRecorder interface {
	StartPhase(name string)
}

// Engine runs ticks with a fixed set of parameters.
type Engine struct {
	params   Params
	recorder PhaseRecorder
}

// NewEngine creates an engine with the given parameters.
func NewEngine(p Params) *Engine {
	return &Engine{params: p}
}

// Params returns the engine parameters.
func (e *Engine) Params() Params {
	return e.params
}

// SetRecorder installs a step timing hook. Pass nil to remove it.
func (e *Engine) SetRecorder(r PhaseRecorder) {
	e.recorder = r
}

// NewWorld returns an empty world in the menu phase, seeded for play.
func (e *Engine) NewWorld(seed uint64) World {
	return World{
		Phase:        components.PhaseMenu,
		Camera:       camera.New(e.params.Camera, e.params.ViewportW, e.params.ViewportH),
		NextPelletID: 1,
		RNG:          *rand.NewPCG(seed, seed^0x9e3779b97f4a7c15),
	}
}

// Start moves a menu world into play, creating the player, the AI snakes
// and the pellet population.
func (e *Engine) Start(w World) (World, error) {
	if w.Phase != components.PhaseMenu {
		return w, fmt.Errorf("start from %s: %w", w.Phase, ErrInvalidTransition)
	}
	p := e.params

	next := World{
		Phase:        components.PhasePlaying,
		Camera:       w.Camera.Reset(),
		NextPelletID: w.NextPelletID,
		RNG:          w.RNG,
	}
	rng := rand.New(&next.RNG)

	next.Player = e.spawnSnake(components.PlayerID, vmath.Zero, vmath.V(1, 0), p.PlayerSpeed)

	next.AI = make([]components.Snake, 0, p.AICount)
	for i := 0; i < p.AICount; i++ {
		pos := vmath.FromAngle(rng.Float64() * 2 * math.Pi).Scale(p.AISpawnRadius)
		heading := vmath.FromAngle(rng.Float64() * 2 * math.Pi)
		next.AI = append(next.AI, e.spawnSnake(fmt.Sprintf("ai-%d", i), pos, heading, p.AISpeed))
	}

	next.Pellets, next.NextPelletID = p.Spawner.SpawnBatch(p.PelletCount, next.NextPelletID, rng)
	return next, nil
}

// Restart discards a finished game and returns to the menu. Nothing but the
// random stream carries over.
func (e *Engine) Restart(w World) (World, error) {
	if w.Phase != components.PhaseGameOver {
		return w, fmt.Errorf("restart from %s: %w", w.Phase, ErrInvalidTransition)
	}
	return World{
		Phase:        components.PhaseMenu,
		Camera:       w.Camera.Reset(),
		NextPelletID: 1,
		RNG:          w.RNG,
	}, nil
}

// Tick advances a playing world by dt seconds. Worlds in any other phase are
// returned unchanged. The input world is not modified.
//
// Order: player movement, player pellets and lethal check, respawn, then for
// each AI steer, move, collect and respawn, and finally the camera. A lethal
// hit ends the tick before the AI moves.
func (e *Engine) Tick(w World, in components.Input, dt float64) (World, []Event) {
	if w.Phase != components.PhasePlaying {
		return w, nil
	}
	p := e.params
	dt = e.sanitizeDT(dt)

	next := w.clone()
	next.Tick++
	rng := rand.New(&next.RNG)
	var events []Event

	e.mark(StepMovement)
	next.Player = systems.Advance(w.Player, in.Target, dt, in.Boost, p.Movement)
	if ev, ok := boostEvent(w.Player, next.Player, next.Tick); ok {
		events = append(events, ev)
	}

	e.mark(StepCollision)
	var consumed []uint64
	next.Player, consumed = systems.CollectPellets(next.Player, next.Pellets, p.CollectionRadius)
	events = appendEaten(events, next.Player.ID, consumed, next.Tick)
	dead := systems.DetectLethalCollision(next.Player, next.AI, p.Lethal)

	e.mark(StepPellets)
	next.Pellets, next.NextPelletID = p.Spawner.Respawn(next.Pellets, consumed, next.NextPelletID, rng)

	if dead {
		next.Phase = components.PhaseGameOver
		next.Result = &Result{
			Score:  next.Player.Score,
			Length: next.Player.Length,
			Ticks:  next.Tick,
		}
		events = append(events, Event{
			Kind:    EventGameOver,
			Tick:    next.Tick,
			SnakeID: next.Player.ID,
			Score:   next.Player.Score,
			Length:  next.Player.Length,
		})
		return next, events
	}

	e.mark(StepSteering)
	for i := range next.AI {
		ai := next.AI[i]
		dir := systems.Steer(ai, next.Pellets, rng, p.Steering)
		ai = systems.Advance(ai, dir, dt, false, p.Movement)
		ai, consumed = systems.CollectPellets(ai, next.Pellets, p.CollectionRadius)
		events = appendEaten(events, ai.ID, consumed, next.Tick)
		// Respawn per snake so two AIs can never share a pellet.
		next.Pellets, next.NextPelletID = p.Spawner.Respawn(next.Pellets, consumed, next.NextPelletID, rng)
		next.AI[i] = ai
	}

	e.mark(StepCamera)
	next.Camera = next.Camera.Follow(next.Player, next.Camera.ViewportW, next.Camera.ViewportH, dt)

	return next, events
}

// sanitizeDT maps non-finite or negative deltas to zero and caps long frames.
func (e *Engine) sanitizeDT(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	if e.params.MaxDT > 0 && dt > e.params.MaxDT {
		return e.params.MaxDT
	}
	return dt
}

func (e *Engine) mark(step string) {
	if e.recorder != nil {
		e.recorder.StartPhase(step)
	}
}

func (e *Engine) spawnSnake(id string, head, heading vmath.Vec2, speed float64) components.Snake {
	p := e.params
	s := components.NewSnake(id, head, heading, p.InitialLength, speed, p.Movement.LinkSpacing, p.Movement.SegmentRadius)
	for i := range s.Segments {
		s.Segments[i].Position = s.Segments[i].Position.ClampSquare(p.Movement.HalfMap)
	}
	return s
}

func boostEvent(before, after components.Snake, tick uint64) (Event, bool) {
	switch {
	case after.Boosting && !before.Boosting:
		return Event{Kind: EventBoostStarted, Tick: tick, SnakeID: after.ID}, true
	case !after.Boosting && before.Boosting:
		return Event{Kind: EventBoostStopped, Tick: tick, SnakeID: after.ID}, true
	}
	return Event{}, false
}

func appendEaten(events []Event, snakeID string, consumed []uint64, tick uint64) []Event {
	for _, id := range consumed {
		events = append(events, Event{Kind: EventPelletEaten, Tick: tick, SnakeID: snakeID, PelletID: id})
	}
	return events
}
