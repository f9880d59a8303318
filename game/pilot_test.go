package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/config"
	"github.com/pthm-cable/snakepit/sim"
	"github.com/pthm-cable/snakepit/vmath"
)

func pilotWorld(length float64, pellets ...vmath.Vec2) *sim.World {
	w := &sim.World{
		Phase:  components.PhasePlaying,
		Player: components.NewSnake(components.PlayerID, vmath.Zero, vmath.V(1, 0), length, 5, 1.0, 0.5),
	}
	for i, p := range pellets {
		w.Pellets = append(w.Pellets, components.Pellet{ID: uint64(i + 1), Position: p})
	}
	return w
}

func TestPilotDecide(t *testing.T) {
	tests := []struct {
		name       string
		length     float64
		pellets    []vmath.Vec2
		wantTarget vmath.Vec2
		wantBoost  bool
	}{
		{
			name:       "nearest pellet",
			length:     10,
			pellets:    []vmath.Vec2{vmath.V(-30, 0), vmath.V(0, 6), vmath.V(10, 0)},
			wantTarget: vmath.V(0, 6),
		},
		{
			name:       "far pellet found by a wider search",
			length:     10,
			pellets:    []vmath.Vec2{vmath.V(40, 0)},
			wantTarget: vmath.V(40, 0),
		},
		{
			name:       "boost toward a distant pellet when long",
			length:     20,
			pellets:    []vmath.Vec2{vmath.V(40, 0)},
			wantTarget: vmath.V(40, 0),
			wantBoost:  true,
		},
		{
			name:       "no boost for a close pellet",
			length:     20,
			pellets:    []vmath.Vec2{vmath.V(10, 0)},
			wantTarget: vmath.V(10, 0),
		},
		{
			name:       "no pellet in range keeps heading",
			length:     10,
			pellets:    []vmath.Vec2{vmath.V(95, 95)},
			wantTarget: vmath.V(5, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPilot(config.Default())
			in := p.Decide(pilotWorld(tt.length, tt.pellets...))

			if vmath.Distance(in.Target, tt.wantTarget) > 1e-9 {
				t.Errorf("target = %v, want %v", in.Target, tt.wantTarget)
			}
			if in.Boost != tt.wantBoost {
				t.Errorf("boost = %v, want %v", in.Boost, tt.wantBoost)
			}
		})
	}
}

func TestPilotAvoidsAIBody(t *testing.T) {
	p := NewPilot(config.Default())
	w := pilotWorld(10, vmath.V(10, 0))
	w.AI = []components.Snake{
		components.NewSnake("ai-0", vmath.V(2, 10), vmath.V(0, 1), 20, 4, 1.0, 0.5),
	}
	// Segment 10 of the AI sits at (2, 0), two units ahead of the head.

	in := p.Decide(w)

	if in.Boost {
		t.Error("pilot should not boost while avoiding")
	}
	dir := in.Target.Sub(w.Player.Head())
	if dir.X >= 0 {
		t.Errorf("target %v does not lead away from the body", in.Target)
	}
	if d := dir.Len(); math.Abs(d-pilotLookAhead) > 1e-9 {
		t.Errorf("target distance = %v, want %v", d, pilotLookAhead)
	}
}

func TestPilotIgnoresDistantBodies(t *testing.T) {
	p := NewPilot(config.Default())
	w := pilotWorld(10, vmath.V(10, 0))
	w.AI = []components.Snake{
		components.NewSnake("ai-0", vmath.V(20, 20), vmath.V(0, 1), 10, 4, 1.0, 0.5),
	}

	if in := p.Decide(w); in.Target != vmath.V(10, 0) {
		t.Errorf("target = %v, want the pellet", in.Target)
	}
}

func TestPointerInput(t *testing.T) {
	cfg := config.Default()
	w := sim.NewEngine(sim.ParamsFromConfig(cfg)).NewWorld(1)

	// The screen centre maps to the camera focus.
	in := PointerInput(w.Camera, cfg.Derived.ViewportW/2, cfg.Derived.ViewportH/2, true)
	if vmath.Distance(in.Target, vmath.V(w.Camera.X, w.Camera.Y)) > 1e-9 {
		t.Errorf("target = %v, want camera focus (%v, %v)", in.Target, w.Camera.X, w.Camera.Y)
	}
	if !in.Boost {
		t.Error("boost flag lost")
	}

	// One zoom's worth of pixels to the right is one world unit.
	in = PointerInput(w.Camera, cfg.Derived.ViewportW/2+w.Camera.Zoom, cfg.Derived.ViewportH/2, false)
	if math.Abs(in.Target.X-(w.Camera.X+1)) > 1e-9 {
		t.Errorf("target x = %v, want %v", in.Target.X, w.Camera.X+1)
	}
}
