// Package vmath provides the 2D vector primitives used by the simulation.
package vmath

import "math"

// Vec2 is a position or direction in world units.
type Vec2 struct {
	X, Y float64
}

// Zero is the zero vector.
var Zero = Vec2{}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// LenSq returns the squared magnitude (avoids sqrt in hot paths).
func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the magnitude of v.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.LenSq())
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// IsFinite reports whether neither component is NaN or ±Inf.
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Normalize returns the unit vector in the direction of v.
// Zero-length and non-finite vectors normalize to Zero.
func (v Vec2) Normalize() Vec2 {
	if !v.IsFinite() {
		return Zero
	}
	l := v.Len()
	if l == 0 || !isFinite(l) {
		return Zero
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Lerp moves v toward target by fraction t of the remaining distance.
func (v Vec2) Lerp(target Vec2, t float64) Vec2 {
	return Vec2{X: v.X + (target.X-v.X)*t, Y: v.Y + (target.Y-v.Y)*t}
}

// ClampSquare clamps each axis into [-half, half].
func (v Vec2) ClampSquare(half float64) Vec2 {
	return Vec2{X: Clamp(v.X, -half, half), Y: Clamp(v.Y, -half, half)}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 {
	return a.Sub(b).Len()
}

// DistanceSq returns the squared distance between a and b.
func DistanceSq(a, b Vec2) float64 {
	return a.Sub(b).LenSq()
}

// FromAngle returns the unit vector at angle radians from +X.
func FromAngle(angle float64) Vec2 {
	return Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// Clamp restricts x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
