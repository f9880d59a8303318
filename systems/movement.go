package systems

import (
	"math"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// MovementParams holds the kinematic and body tuning for Advance.
type MovementParams struct {
	HalfMap              float64 // arena is [-HalfMap, HalfMap] on both axes
	LinkSpacing          float64
	CompressionThreshold float64
	DeadZone             float64
	SegmentRadius        float64
	BoostMultiplier      float64
	BoostDrainRate       float64 // length per second
	MinLength            float64
	TailGrowth           bool
}

// SteerToward returns the unit direction from head to target, or zero when
// the target lies within the dead zone or is not a finite point.
func SteerToward(head, target vmath.Vec2, deadZone float64) vmath.Vec2 {
	if !target.IsFinite() {
		return vmath.Zero
	}
	delta := target.Sub(head)
	if delta.Len() <= deadZone {
		return vmath.Zero
	}
	return delta.Normalize()
}

// Advance moves a snake one step and rebuilds its body.
//
// For the player, steer is a world-space target point. For AI snakes steer is
// the direction chosen by Steer and is used as-is. The input snake is not
// modified.
func Advance(s components.Snake, steer vmath.Vec2, dt float64, boosting bool, p MovementParams) components.Snake {
	next := s
	head := s.Head()

	if s.Player {
		next.Direction = SteerToward(head, steer, p.DeadZone)
	} else {
		next.Direction = steer.Normalize()
		boosting = false
	}

	// Boost is only honoured while there is length left to burn.
	next.Boosting = boosting && s.Length > p.MinLength
	speed := s.Speed
	if next.Boosting {
		speed *= p.BoostMultiplier
		next.Length = math.Max(p.MinLength, s.Length-p.BoostDrainRate*dt)
	}

	newHead := head.Add(next.Direction.Scale(speed * dt)).ClampSquare(p.HalfMap)
	next.Segments = FollowChain(newHead, s.Segments, next.Length, p)
	return next
}

// FollowChain places newHead and drags the previous body behind it.
//
// Each old segment, head to tail, is compared against the segment placed
// last. Farther than LinkSpacing: a new segment is projected exactly
// LinkSpacing toward it. Between CompressionThreshold and LinkSpacing: it is
// kept where it was. Closer than CompressionThreshold: it is dropped. The walk
// stops once the body holds Length segments or the old body runs out.
//
// With TailGrowth, a body shorter than Length gains one segment past the tail
// per call, even when the head does not move. The existing segments keep
// their positions; only the tail extends.
func FollowChain(newHead vmath.Vec2, old []components.Segment, length float64, p MovementParams) []components.Segment {
	capacity := int(math.Ceil(length))
	if capacity < 1 {
		capacity = 1
	}
	segs := make([]components.Segment, 1, capacity)
	segs[0] = components.Segment{Position: newHead, Radius: p.SegmentRadius}

	for i := 0; i < len(old) && float64(len(segs)) < length; i++ {
		last := segs[len(segs)-1].Position
		candidate := old[i].Position
		d := vmath.Distance(last, candidate)

		switch {
		case d > p.LinkSpacing:
			pos := last.Add(candidate.Sub(last).Scale(p.LinkSpacing / d))
			segs = append(segs, components.Segment{Position: pos, Radius: p.SegmentRadius})
		case d > p.CompressionThreshold:
			segs = append(segs, components.Segment{Position: candidate, Radius: p.SegmentRadius})
		}
	}

	if p.TailGrowth && float64(len(segs)) < length {
		segs = append(segs, components.Segment{Position: extendTail(segs, p), Radius: p.SegmentRadius})
	}
	return segs
}

// extendTail returns a point one link beyond the tail, continuing the line
// from the second-to-last segment through the tail.
func extendTail(segs []components.Segment, p MovementParams) vmath.Vec2 {
	tail := segs[len(segs)-1].Position
	dir := vmath.V(-1, 0)
	if len(segs) >= 2 {
		if d := tail.Sub(segs[len(segs)-2].Position).Normalize(); !d.IsZero() {
			dir = d
		}
	}
	return tail.Add(dir.Scale(p.LinkSpacing)).ClampSquare(p.HalfMap)
}
