package sim

import "fmt"

// EventKind identifies a discrete transition emitted by Tick.
type EventKind uint8

const (
	EventPelletEaten EventKind = iota
	EventBoostStarted
	EventBoostStopped
	EventGameOver
)

var eventKindNames = [...]string{
	EventPelletEaten:  "pellet_eaten",
	EventBoostStarted: "boost_started",
	EventBoostStopped: "boost_stopped",
	EventGameOver:     "game_over",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", k)
}

// Event is something a host may react to. Events are data, never errors.
type Event struct {
	Kind     EventKind
	Tick     uint64
	SnakeID  string
	PelletID uint64 // EventPelletEaten
	Score    int    // EventGameOver
	Length   float64
}
