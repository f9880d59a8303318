// Package components defines the entity data shared by the simulation systems.
package components

import (
	"math"

	"github.com/pthm-cable/snakepit/vmath"
)

// PlayerID is the identity of the player-controlled snake.
const PlayerID = "player"

// Segment is one circular link of a snake body. Segments carry no identity;
// the body is rebuilt every tick and only positions matter.
type Segment struct {
	Position vmath.Vec2
	Radius   float64
}

// Snake is a chain of segments, head first.
type Snake struct {
	ID        string
	Player    bool
	Segments  []Segment  // index 0 is the head
	Direction vmath.Vec2 // unit or zero
	Speed     float64    // base speed, units/second
	Length    float64    // target body length; fractional while boost drains it
	Score     int
	Boosting  bool
}

// NewSnake lays out a straight body of ceil(length) segments trailing
// behind head, opposite to heading, spacing units apart.
func NewSnake(id string, head, heading vmath.Vec2, length, speed, spacing, radius float64) Snake {
	dir := heading.Normalize()
	n := int(math.Ceil(length))
	segs := make([]Segment, n)
	for i := range segs {
		segs[i] = Segment{
			Position: head.Sub(dir.Scale(float64(i) * spacing)),
			Radius:   radius,
		}
	}
	return Snake{
		ID:        id,
		Player:    id == PlayerID,
		Segments:  segs,
		Direction: dir,
		Speed:     speed,
		Length:    length,
	}
}

// Head returns the head position. A snake without segments reports the origin.
func (s Snake) Head() vmath.Vec2 {
	if len(s.Segments) == 0 {
		return vmath.Zero
	}
	return s.Segments[0].Position
}

// HeadRadius returns the radius of the head segment.
func (s Snake) HeadRadius() float64 {
	if len(s.Segments) == 0 {
		return 0
	}
	return s.Segments[0].Radius
}

// Clone returns a copy that shares no segment storage with s.
func (s Snake) Clone() Snake {
	s.Segments = append([]Segment(nil), s.Segments...)
	return s
}
