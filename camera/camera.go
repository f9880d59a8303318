// Package camera provides the 2D camera that tracks the player.
package camera

import (
	"math"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// Params holds camera tuning. Factors are applied once per tick.
type Params struct {
	FollowFactor float64
	StartZoom    float64
	BaseZoom     float64
	MinZoom      float64
	ZoomScale    float64 // zoom lost per unit of length above ReferenceLength
	IntroFactor  float64
	ZoomFactor   float64
	ZoomEpsilon  float64

	// ReferenceLength is the length at which the target zoom equals BaseZoom.
	ReferenceLength float64
}

// Camera controls the viewport into the arena.
// It is a presentation transform and never feeds back into the simulation.
type Camera struct {
	// Focus is the camera center in world coordinates
	X, Y float64

	// Zoom is pixels per world unit
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Settled latches once the opening zoom reaches its first target.
	// From then on zoom follows with ZoomFactor instead of IntroFactor.
	Settled bool

	Params Params
}

// New creates a camera centered on the origin at the starting zoom.
func New(p Params, viewportW, viewportH float64) Camera {
	return Camera{
		Zoom:      p.StartZoom,
		ViewportW: viewportW,
		ViewportH: viewportH,
		Params:    p,
	}
}

// TargetZoom returns the zoom the camera eases toward for a snake of the
// given length. Longer snakes get a wider view, floored at MinZoom.
func (c Camera) TargetZoom(length float64) float64 {
	return math.Max(c.Params.MinZoom, c.Params.BaseZoom-(length-c.Params.ReferenceLength)*c.Params.ZoomScale)
}

// Follow returns the camera advanced one tick toward the player's head.
//
// Smoothing is per tick, not time-normalized: dt only gates the update, and a
// non-positive dt (paused frame) leaves focus and zoom where they are.
func (c Camera) Follow(player components.Snake, viewportW, viewportH, dt float64) Camera {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if dt <= 0 || len(player.Segments) == 0 {
		return c
	}

	head := player.Head()
	focus := vmath.V(c.X, c.Y).Lerp(head, c.Params.FollowFactor)
	c.X, c.Y = focus.X, focus.Y

	target := c.TargetZoom(player.Length)
	factor := c.Params.IntroFactor
	if c.Settled {
		factor = c.Params.ZoomFactor
	}
	c.Zoom += (target - c.Zoom) * factor
	if !c.Settled && math.Abs(c.Zoom-target) < c.Params.ZoomEpsilon {
		c.Settled = true
	}
	return c
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	if c.Zoom == 0 {
		return c.X, c.Y
	}
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c Camera) IsVisible(wx, wy, radius float64) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	if c.Zoom <= 0 {
		return math.Inf(-1), math.Inf(-1), math.Inf(1), math.Inf(1)
	}
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// Reset returns the camera to the origin at the starting zoom and clears
// the opening latch.
func (c Camera) Reset() Camera {
	return New(c.Params, c.ViewportW, c.ViewportH)
}
