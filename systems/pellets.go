package systems

import (
	"math/rand/v2"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// PelletSpawner creates pellets inside the arena.
type PelletSpawner struct {
	HalfMap float64
	Size    float64
	Palette []string
}

// Spawn creates one pellet with the given id at a uniform random position
// and a uniform random palette color.
func (ps PelletSpawner) Spawn(id uint64, rng *rand.Rand) components.Pellet {
	color := ""
	if len(ps.Palette) > 0 {
		color = ps.Palette[rng.IntN(len(ps.Palette))]
	}
	return components.Pellet{
		ID: id,
		Position: vmath.V(
			(rng.Float64()*2-1)*ps.HalfMap,
			(rng.Float64()*2-1)*ps.HalfMap,
		),
		Color: color,
		Size:  ps.Size,
	}
}

// SpawnBatch creates n pellets with ids starting at firstID.
// It returns the pellets and the next unused id.
func (ps PelletSpawner) SpawnBatch(n int, firstID uint64, rng *rand.Rand) ([]components.Pellet, uint64) {
	pellets := make([]components.Pellet, 0, n)
	id := firstID
	for i := 0; i < n; i++ {
		pellets = append(pellets, ps.Spawn(id, rng))
		id++
	}
	return pellets, id
}

// Respawn removes every consumed pellet and appends exactly one replacement
// per removed pellet, so the population size never changes. Replacements get
// fresh ids starting at nextID. The input slice is not modified.
// It returns the new population and the next unused id.
func (ps PelletSpawner) Respawn(pellets []components.Pellet, consumed []uint64, nextID uint64, rng *rand.Rand) ([]components.Pellet, uint64) {
	if len(consumed) == 0 {
		return pellets, nextID
	}

	gone := make(map[uint64]struct{}, len(consumed))
	for _, id := range consumed {
		gone[id] = struct{}{}
	}

	out := make([]components.Pellet, 0, len(pellets))
	removed := 0
	for _, p := range pellets {
		if _, ok := gone[p.ID]; ok {
			removed++
			continue
		}
		out = append(out, p)
	}

	for i := 0; i < removed; i++ {
		out = append(out, ps.Spawn(nextID, rng))
		nextID++
	}
	return out, nextID
}
