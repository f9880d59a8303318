package systems

import (
	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// BodyCheck describes one lethal contact test against a snake body.
type BodyCheck struct {
	Radius float64
	// HeadExemptSegmentCount leading segments are never lethal. For other
	// snakes this forgives head grazes; for the player's own body it keeps
	// the neck from killing the head on tight turns.
	HeadExemptSegmentCount int
}

// LethalParams holds the two lethal contact tests run for the player.
type LethalParams struct {
	Other BodyCheck
	Self  BodyCheck
}

// CollectPellets consumes every pellet whose centre lies within radius of
// the snake head. Each pellet adds one to Length and Score. The returned ids
// are in pellet order.
func CollectPellets(s components.Snake, pellets []components.Pellet, radius float64) (components.Snake, []uint64) {
	head := s.Head()
	radiusSq := radius * radius

	var consumed []uint64
	for i := range pellets {
		if vmath.DistanceSq(head, pellets[i].Position) < radiusSq {
			consumed = append(consumed, pellets[i].ID)
			s.Length++
			s.Score++
		}
	}
	return s, consumed
}

// HitsBody reports whether head lies within check.Radius of any segment of
// body at or past index check.HeadExemptSegmentCount.
func HitsBody(head vmath.Vec2, body []components.Segment, check BodyCheck) bool {
	radiusSq := check.Radius * check.Radius
	start := check.HeadExemptSegmentCount
	if start < 0 {
		start = 0
	}
	for i := start; i < len(body); i++ {
		if vmath.DistanceSq(head, body[i].Position) < radiusSq {
			return true
		}
	}
	return false
}

// DetectLethalCollision reports whether the player's head touched another
// snake's body or its own. Only the player is ever tested; AI snakes are
// immune to each other and to the player.
func DetectLethalCollision(player components.Snake, others []components.Snake, p LethalParams) bool {
	head := player.Head()
	for i := range others {
		if others[i].ID == player.ID {
			continue
		}
		if HitsBody(head, others[i].Segments, p.Other) {
			return true
		}
	}
	return HitsBody(head, player.Segments, p.Self)
}
