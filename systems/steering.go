package systems

import (
	"math"
	"math/rand/v2"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// SteeringParams holds AI steering tuning.
type SteeringParams struct {
	ScanLimit       int     // only pellets[:ScanLimit] are considered
	DetectionRadius float64 // chase range
	WanderChance    float64 // per tick, not per second
}

// Steer picks the heading for an AI snake.
//
// The AI chases the closest pellet within DetectionRadius among the first
// ScanLimit pellets. With nothing in range it keeps its heading, except for a
// WanderChance per tick of turning to a random angle. It never plans paths or
// looks at other snakes.
func Steer(s components.Snake, pellets []components.Pellet, rng *rand.Rand, p SteeringParams) vmath.Vec2 {
	head := s.Head()

	if target, ok := NearestPellet(head, pellets, p.ScanLimit, p.DetectionRadius); ok {
		if dir := target.Position.Sub(head).Normalize(); !dir.IsZero() {
			return dir
		}
	}

	if rng.Float64() < p.WanderChance {
		return vmath.FromAngle(rng.Float64() * 2 * math.Pi)
	}
	return s.Direction
}

// NearestPellet returns the closest pellet to pos within radius, looking at
// no more than the first limit pellets. limit <= 0 scans everything.
func NearestPellet(pos vmath.Vec2, pellets []components.Pellet, limit int, radius float64) (components.Pellet, bool) {
	if limit <= 0 || limit > len(pellets) {
		limit = len(pellets)
	}

	bestIdx := -1
	bestDistSq := radius * radius
	for i := 0; i < limit; i++ {
		d := vmath.DistanceSq(pos, pellets[i].Position)
		if d < bestDistSq {
			bestDistSq = d
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return components.Pellet{}, false
	}
	return pellets[bestIdx], true
}
