package camera

import (
	"math"
	"testing"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

func testParams() Params {
	return Params{
		FollowFactor:    0.1,
		StartZoom:       10,
		BaseZoom:        12,
		MinZoom:         4,
		ZoomScale:       0.05,
		IntroFactor:     0.001,
		ZoomFactor:      0.05,
		ZoomEpsilon:     0.1,
		ReferenceLength: 10,
	}
}

func snakeAt(x, y, length float64) components.Snake {
	return components.NewSnake(components.PlayerID, vmath.V(x, y), vmath.V(1, 0), length, 5, 1, 0.5)
}

func TestNew(t *testing.T) {
	cam := New(testParams(), 1280, 720)

	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("expected camera at origin, got (%f, %f)", cam.X, cam.Y)
	}
	if cam.Zoom != 10 {
		t.Errorf("expected start zoom 10, got %f", cam.Zoom)
	}
	if cam.Settled {
		t.Error("new camera should not be settled")
	}
}

func TestFollowFocus(t *testing.T) {
	cam := New(testParams(), 1280, 720)

	cam = cam.Follow(snakeAt(10, -20, 10), 1280, 720, 1.0/60)
	if math.Abs(cam.X-1) > 1e-9 || math.Abs(cam.Y+2) > 1e-9 {
		t.Errorf("focus = (%f, %f), want (1, -2)", cam.X, cam.Y)
	}

	cam = cam.Follow(snakeAt(10, -20, 10), 1280, 720, 1.0/60)
	if math.Abs(cam.X-1.9) > 1e-9 {
		t.Errorf("second tick focus x = %f, want 1.9", cam.X)
	}
}

func TestTargetZoom(t *testing.T) {
	cam := New(testParams(), 1280, 720)

	tests := []struct {
		length float64
		want   float64
	}{
		{10, 12},
		{30, 11},
		{170, 4},
		{1000, 4}, // floored
	}
	for _, tt := range tests {
		if got := cam.TargetZoom(tt.length); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TargetZoom(%v) = %v, want %v", tt.length, got, tt.want)
		}
	}
}

func TestZoomLatchIsOneWay(t *testing.T) {
	cam := New(testParams(), 1280, 720)
	s := snakeAt(0, 0, 10)

	// Intro factor: first tick moves zoom by only 0.1% of the gap
	next := cam.Follow(s, 1280, 720, 1.0/60)
	if math.Abs(next.Zoom-(10+2*0.001)) > 1e-9 {
		t.Fatalf("intro zoom = %v, want %v", next.Zoom, 10+2*0.001)
	}

	ticks := 0
	for !cam.Settled {
		cam = cam.Follow(s, 1280, 720, 1.0/60)
		ticks++
		if ticks > 100000 {
			t.Fatal("camera never settled")
		}
	}
	if math.Abs(cam.Zoom-12) >= 0.1 {
		t.Errorf("settled at zoom %v, want within 0.1 of 12", cam.Zoom)
	}

	// A big jump in length moves the target far away; the latch must hold
	// and the fast factor must be used.
	long := snakeAt(0, 0, 110) // target 7
	before := cam.Zoom
	cam = cam.Follow(long, 1280, 720, 1.0/60)
	if !cam.Settled {
		t.Fatal("latch released")
	}
	want := before + (7-before)*0.05
	if math.Abs(cam.Zoom-want) > 1e-9 {
		t.Errorf("zoom = %v, want fast follow %v", cam.Zoom, want)
	}
}

func TestFollowPausedFrame(t *testing.T) {
	cam := New(testParams(), 1280, 720)
	next := cam.Follow(snakeAt(50, 50, 10), 800, 600, 0)

	if next.X != 0 || next.Zoom != cam.Zoom {
		t.Errorf("paused frame moved the camera: %+v", next)
	}
	if next.ViewportW != 800 || next.ViewportH != 600 {
		t.Errorf("viewport not updated: %v x %v", next.ViewportW, next.ViewportH)
	}
}

func TestWorldToScreenCentered(t *testing.T) {
	cam := New(testParams(), 1280, 720)
	cam.X, cam.Y = 5, 5

	sx, sy := cam.WorldToScreen(5, 5)
	if math.Abs(sx-640) > 0.01 || math.Abs(sy-360) > 0.01 {
		t.Errorf("expected screen center (640, 360), got (%f, %f)", sx, sy)
	}
	sx, _ = cam.WorldToScreen(6, 5)
	if math.Abs(sx-650) > 0.01 {
		t.Errorf("one world unit should be zoom pixels, got x=%f", sx)
	}
}

func TestScreenToWorldRoundtrip(t *testing.T) {
	cam := New(testParams(), 1280, 720)
	cam.X, cam.Y = -30, 12
	cam.Zoom = 7.5

	testCases := []struct{ sx, sy float64 }{
		{640, 360},  // center
		{100, 100},  // top-left
		{1200, 600}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := cam.ScreenToWorld(tc.sx, tc.sy)
		sx, sy := cam.WorldToScreen(wx, wy)
		if math.Abs(sx-tc.sx) > 0.01 || math.Abs(sy-tc.sy) > 0.01 {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.sx, tc.sy, wx, wy, sx, sy)
		}
	}
}

func TestIsVisible(t *testing.T) {
	cam := New(testParams(), 1280, 720) // 128 x 72 world units visible

	tests := []struct {
		name   string
		x, y   float64
		radius float64
		want   bool
	}{
		{"center", 0, 0, 0.5, true},
		{"inside edge", 63, 35, 0.5, true},
		{"outside", 70, 0, 0.5, false},
		{"radius reaches in", 64.4, 0, 0.5, true},
		{"below", 0, -40, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cam.IsVisible(tt.x, tt.y, tt.radius); got != tt.want {
				t.Errorf("IsVisible(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestVisibleWorldBounds(t *testing.T) {
	cam := New(testParams(), 1280, 720)
	cam.X = 10

	minX, minY, maxX, maxY := cam.VisibleWorldBounds()
	if minX != -54 || maxX != 74 || minY != -36 || maxY != 36 {
		t.Errorf("bounds = (%v, %v, %v, %v)", minX, minY, maxX, maxY)
	}
}

func TestReset(t *testing.T) {
	cam := New(testParams(), 1280, 720)
	cam.X, cam.Y, cam.Zoom, cam.Settled = 40, 40, 6, true

	cam = cam.Reset()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 10 || cam.Settled {
		t.Errorf("reset camera = %+v", cam)
	}
	if cam.ViewportW != 1280 {
		t.Errorf("reset dropped viewport: %v", cam.ViewportW)
	}
}
