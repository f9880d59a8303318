package game

import (
	"github.com/pthm-cable/snakepit/camera"
	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

// PointerInput resolves a pointer in screen pixels into a world-space
// steering target using the camera of the current frame.
func PointerInput(cam camera.Camera, screenX, screenY float64, boost bool) components.Input {
	wx, wy := cam.ScreenToWorld(screenX, screenY)
	return components.Input{Target: vmath.V(wx, wy), Boost: boost}
}
