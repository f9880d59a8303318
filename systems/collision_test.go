package systems

import (
	"testing"

	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/vmath"
)

func testLethal() LethalParams {
	return LethalParams{
		Other: BodyCheck{Radius: 1.0, HeadExemptSegmentCount: 3},
		Self:  BodyCheck{Radius: 0.8, HeadExemptSegmentCount: 5},
	}
}

// straightSnake lays a snake along +Y from origin so segment i sits at (x, i).
func straightSnake(id string, x float64, n int) components.Snake {
	s := components.Snake{ID: id, Length: float64(n)}
	for i := 0; i < n; i++ {
		s.Segments = append(s.Segments, components.Segment{Position: vmath.V(x, float64(i)), Radius: 0.5})
	}
	return s
}

func TestCollectPellets(t *testing.T) {
	s := testPlayer(10)
	pellets := []components.Pellet{
		{ID: 1, Position: vmath.V(1.0, 0)},   // inside 1.5
		{ID: 2, Position: vmath.V(0, -1.49)}, // inside
		{ID: 3, Position: vmath.V(1.5, 0)},   // exactly on the radius: not collected
		{ID: 4, Position: vmath.V(20, 20)},   // far away
	}

	got, consumed := CollectPellets(s, pellets, 1.5)

	if len(consumed) != 2 || consumed[0] != 1 || consumed[1] != 2 {
		t.Fatalf("consumed = %v, want [1 2]", consumed)
	}
	if got.Length != s.Length+2 {
		t.Errorf("length = %v, want %v", got.Length, s.Length+2)
	}
	if got.Score != s.Score+2 {
		t.Errorf("score = %d, want %d", got.Score, s.Score+2)
	}
}

func TestCollectSinglePelletAndRespawn(t *testing.T) {
	rng := testRand()
	spawner := PelletSpawner{HalfMap: 100, Size: 0.4, Palette: []string{"#fff"}}
	pellets, next := spawner.SpawnBatch(10, 1, rng)
	pellets[4].Position = vmath.V(1.0, 0)

	s := testPlayer(10)
	s, consumed := CollectPellets(s, pellets, 1.5)

	found := false
	for _, id := range consumed {
		if id == pellets[4].ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("pellet %d not in consumed %v", pellets[4].ID, consumed)
	}
	if s.Length != 10+float64(len(consumed)) {
		t.Errorf("length = %v, want %v", s.Length, 10+float64(len(consumed)))
	}

	after, _ := spawner.Respawn(pellets, consumed, next, rng)
	if len(after) != len(pellets) {
		t.Errorf("population %d after respawn, want %d", len(after), len(pellets))
	}
}

func TestDetectLethalCollisionOtherSnake(t *testing.T) {
	ai := straightSnake("ai-0", 10, 12)

	tests := []struct {
		name string
		head vmath.Vec2
		want bool
	}{
		{"near fourth segment", vmath.V(10.5, 3), true},
		{"near second segment (exempt)", vmath.V(10.5, 1), false},
		{"near head (exempt)", vmath.V(10, 0.2), false},
		{"just outside radius", vmath.V(11.01, 6), false},
		{"on the tail", vmath.V(10, 11), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			player := testPlayer(10)
			player.Segments[0].Position = tt.head
			if got := DetectLethalCollision(player, []components.Snake{ai}, testLethal()); got != tt.want {
				t.Errorf("DetectLethalCollision() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectLethalCollisionSelf(t *testing.T) {
	// Player body coiled so segment 6 sits right next to the head
	player := straightSnake(components.PlayerID, 0, 10)
	player.Player = true
	player.Segments[6].Position = vmath.V(0.5, 0)

	if !DetectLethalCollision(player, nil, testLethal()) {
		t.Error("expected self collision with segment 6")
	}

	// Neck segments never kill, however close
	player = straightSnake(components.PlayerID, 0, 10)
	player.Player = true
	player.Segments[4].Position = vmath.V(0.1, 0)
	if DetectLethalCollision(player, nil, testLethal()) {
		t.Error("segments 1-4 are exempt from self collision")
	}

	// Self radius is tighter than the radius used for other snakes
	player = straightSnake(components.PlayerID, 0, 10)
	player.Player = true
	player.Segments[7].Position = vmath.V(0.9, 0)
	if DetectLethalCollision(player, nil, testLethal()) {
		t.Error("0.9 is outside the 0.8 self radius")
	}
}

func TestDetectLethalCollisionSkipsPlayerInOthers(t *testing.T) {
	player := straightSnake(components.PlayerID, 0, 10)
	player.Player = true

	// Passing the player in the others list must not compare it against
	// itself with the looser radius.
	if DetectLethalCollision(player, []components.Snake{player}, testLethal()) {
		t.Error("player matched against itself as another snake")
	}
}

func TestHitsBodyExemption(t *testing.T) {
	body := straightSnake("ai-1", 0, 6).Segments
	head := vmath.V(0, 2)

	if !HitsBody(head, body, BodyCheck{Radius: 0.5, HeadExemptSegmentCount: 2}) {
		t.Error("segment 2 is not exempt with count 2")
	}
	if HitsBody(head, body, BodyCheck{Radius: 0.5, HeadExemptSegmentCount: 3}) {
		t.Error("segment 2 is exempt with count 3")
	}
	if HitsBody(head, body, BodyCheck{Radius: 0.5, HeadExemptSegmentCount: 10}) {
		t.Error("exemption past the tail must never hit")
	}
	if !HitsBody(head, body, BodyCheck{Radius: 0.5, HeadExemptSegmentCount: -1}) {
		t.Error("negative exemption behaves as zero")
	}
}
