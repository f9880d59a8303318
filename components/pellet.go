package components

import "github.com/pthm-cable/snakepit/vmath"

// Pellet is a stationary food item. Pellets are immutable once spawned;
// they are only ever removed and replaced.
type Pellet struct {
	ID       uint64
	Position vmath.Vec2
	Color    string
	Size     float64
}
