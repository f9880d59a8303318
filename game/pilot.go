package game

import (
	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/config"
	"github.com/pthm-cable/snakepit/sim"
	"github.com/pthm-cable/snakepit/systems"
	"github.com/pthm-cable/snakepit/vmath"
)

// pilotCellSize is the spatial grid cell size used for pellet lookups.
const pilotCellSize = 8.0

// pilotSearchRadii are tried in order until a pellet is found.
var pilotSearchRadii = []float64{8, 24, 64}

// pilotLookAhead is how far ahead of the head the pilot aims when it has no
// pellet to chase or is veering away from a body. It stays well outside the
// steering dead zone.
const pilotLookAhead = 5.0

// Pilot steers the player in headless runs: chase the nearest pellet, boost
// toward distant ones once long enough, and veer away from AI bodies.
type Pilot struct {
	grid *systems.SpatialGrid

	boostLength   float64
	boostDistance float64
	avoidRadius   float64
}

// NewPilot creates an autopilot for the configured arena.
func NewPilot(cfg *config.Config) *Pilot {
	return &Pilot{
		grid:          systems.NewSpatialGrid(cfg.Arena.MapSize, pilotCellSize),
		boostLength:   cfg.Game.AutopilotBoostLength,
		boostDistance: cfg.Game.AutopilotBoostDistance,
		avoidRadius:   cfg.Game.AutopilotAvoidRadius,
	}
}

// Decide returns the input for the next tick.
func (p *Pilot) Decide(w *sim.World) components.Input {
	head := w.Player.Head()
	heading := w.Player.Direction
	if heading.IsZero() {
		heading = vmath.V(1, 0)
	}

	if away, ok := p.avoid(head, w.AI); ok {
		return components.Input{Target: head.Add(away.Scale(pilotLookAhead))}
	}

	p.grid.Rebuild(w.Pellets)
	for _, r := range pilotSearchRadii {
		idx := p.grid.Nearest(head, r, w.Pellets)
		if idx < 0 {
			continue
		}
		target := w.Pellets[idx].Position
		boost := w.Player.Length >= p.boostLength && vmath.Distance(head, target) > p.boostDistance
		return components.Input{Target: target, Boost: boost}
	}

	return components.Input{Target: head.Add(heading.Scale(pilotLookAhead))}
}

// avoid returns a unit vector pointing away from the closest AI segment
// within the avoid radius.
func (p *Pilot) avoid(head vmath.Vec2, ai []components.Snake) (vmath.Vec2, bool) {
	if p.avoidRadius <= 0 {
		return vmath.Vec2{}, false
	}
	best := p.avoidRadius * p.avoidRadius
	var closest vmath.Vec2
	found := false
	for _, s := range ai {
		for _, seg := range s.Segments {
			if d := vmath.DistanceSq(head, seg.Position); d < best {
				best = d
				closest = seg.Position
				found = true
			}
		}
	}
	if !found {
		return vmath.Vec2{}, false
	}
	away := head.Sub(closest).Normalize()
	if away.IsZero() {
		return vmath.Vec2{}, false
	}
	return away, true
}
