package components

import "github.com/pthm-cable/snakepit/vmath"

// Phase is the overall game state.
type Phase uint8

const (
	PhaseMenu     Phase = iota // Waiting for a start command
	PhasePlaying               // Ticks advance the world
	PhaseGameOver              // Player died; waiting for restart
)

// String returns the phase name used in logs.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// Input is the already-resolved player control for one tick.
type Input struct {
	Target vmath.Vec2 // pointer position in world space
	Boost  bool
}
