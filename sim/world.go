// Package sim advances the arena one tick at a time.
//
// The engine is a pure function of (world, input, dt): Tick never mutates the
// world it is given and carries its random source inside the world value, so
// replaying the same inputs from the same world yields the same result.
package sim

import (
	"math/rand/v2"

	"github.com/pthm-cable/snakepit/camera"
	"github.com/pthm-cable/snakepit/components"
)

// World is a full snapshot of the arena.
type World struct {
	Phase   components.Phase
	Tick    uint64
	Player  components.Snake
	AI      []components.Snake
	Pellets []components.Pellet
	Camera  camera.Camera

	// NextPelletID is the id the next spawned pellet receives.
	NextPelletID uint64

	// RNG drives AI wander and pellet placement.
	RNG rand.PCG

	// Result is set when the game ends.
	Result *Result
}

// Result is the user-visible outcome of a finished game.
type Result struct {
	Score  int
	Length float64
	Ticks  uint64
}

// Snakes returns the player followed by every AI snake.
func (w *World) Snakes() []components.Snake {
	out := make([]components.Snake, 0, 1+len(w.AI))
	if len(w.Player.Segments) > 0 {
		out = append(out, w.Player)
	}
	return append(out, w.AI...)
}

// clone returns a copy of w whose slices can be replaced without touching w.
func (w World) clone() World {
	w.AI = append([]components.Snake(nil), w.AI...)
	if w.Result != nil {
		r := *w.Result
		w.Result = &r
	}
	return w
}
