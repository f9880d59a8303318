// Package scene mirrors world snapshots into an ECS world and produces a
// culled, ordered draw list for an external renderer.
package scene

import (
	"cmp"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/snakepit/camera"
	"github.com/pthm-cable/snakepit/components"
	"github.com/pthm-cable/snakepit/sim"
)

// Layer orders drawing; lower layers are drawn first.
type Layer uint8

const (
	LayerPellet Layer = iota
	LayerAI
	LayerPlayer
)

// Position is an entity's world position.
type Position struct {
	X, Y float64
}

// Sprite describes how an entity is drawn.
type Sprite struct {
	Radius float64
	Color  string
	Layer  Layer
}

// Tag links an entity back to the simulation object it mirrors.
type Tag struct {
	SnakeID  string // empty for pellets
	Index    int    // segment index, 0 is the head
	PelletID uint64
}

// Style holds snake colors. Pellets carry their own.
type Style struct {
	PlayerColor string
	AIColors    []string // cycled by AI index
}

// DefaultStyle returns the stock snake colors.
func DefaultStyle() Style {
	return Style{
		PlayerColor: "#f8f9fa",
		AIColors:    []string{"#e76f51", "#2a9d8f", "#e9c46a", "#8ecae6", "#b5838d"},
	}
}

// DrawItem is one circle to draw, in screen coordinates.
type DrawItem struct {
	X, Y    float64
	Radius  float64 // pixels
	Color   string
	Layer   Layer
	SnakeID string
	Index   int
	Head    bool
}

// Scene is an ECS mirror of the latest world snapshot.
type Scene struct {
	world  *ecs.World
	mapper *ecs.Map3[Position, Sprite, Tag]
	filter *ecs.Filter3[Position, Sprite, Tag]
	style  Style

	pellets  map[uint64]ecs.Entity
	segments map[string][]ecs.Entity

	// scratch for Sync
	seenPellets map[uint64]struct{}
	seenSnakes  map[string]struct{}
}

// New creates an empty scene.
func New(style Style) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:       world,
		mapper:      ecs.NewMap3[Position, Sprite, Tag](world),
		filter:      ecs.NewFilter3[Position, Sprite, Tag](world),
		style:       style,
		pellets:     make(map[uint64]ecs.Entity),
		segments:    make(map[string][]ecs.Entity),
		seenPellets: make(map[uint64]struct{}),
		seenSnakes:  make(map[string]struct{}),
	}
}

// Sync updates the mirror to match w, creating and removing entities as
// pellets and segments come and go.
func (s *Scene) Sync(w *sim.World) {
	clear(s.seenPellets)
	for _, p := range w.Pellets {
		s.seenPellets[p.ID] = struct{}{}
		if e, ok := s.pellets[p.ID]; ok {
			pos, spr, _ := s.mapper.Get(e)
			pos.X, pos.Y = p.Position.X, p.Position.Y
			spr.Radius, spr.Color = p.Size, p.Color
			continue
		}
		s.pellets[p.ID] = s.mapper.NewEntity(
			&Position{X: p.Position.X, Y: p.Position.Y},
			&Sprite{Radius: p.Size, Color: p.Color, Layer: LayerPellet},
			&Tag{PelletID: p.ID},
		)
	}
	for id, e := range s.pellets {
		if _, ok := s.seenPellets[id]; !ok {
			s.world.RemoveEntity(e)
			delete(s.pellets, id)
		}
	}

	clear(s.seenSnakes)
	if len(w.Player.Segments) > 0 {
		s.syncSnake(w.Player, s.style.PlayerColor, LayerPlayer)
	}
	for i := range w.AI {
		color := ""
		if len(s.style.AIColors) > 0 {
			color = s.style.AIColors[i%len(s.style.AIColors)]
		}
		s.syncSnake(w.AI[i], color, LayerAI)
	}
	for id, ents := range s.segments {
		if _, ok := s.seenSnakes[id]; !ok {
			for _, e := range ents {
				s.world.RemoveEntity(e)
			}
			delete(s.segments, id)
		}
	}
}

func (s *Scene) syncSnake(sn components.Snake, color string, layer Layer) {
	s.seenSnakes[sn.ID] = struct{}{}
	ents := s.segments[sn.ID]

	for i, seg := range sn.Segments {
		if i < len(ents) {
			pos, spr, _ := s.mapper.Get(ents[i])
			pos.X, pos.Y = seg.Position.X, seg.Position.Y
			spr.Radius, spr.Color = seg.Radius, color
			continue
		}
		ents = append(ents, s.mapper.NewEntity(
			&Position{X: seg.Position.X, Y: seg.Position.Y},
			&Sprite{Radius: seg.Radius, Color: color, Layer: layer},
			&Tag{SnakeID: sn.ID, Index: i},
		))
	}
	for _, e := range ents[len(sn.Segments):] {
		s.world.RemoveEntity(e)
	}
	s.segments[sn.ID] = ents[:len(sn.Segments)]
}

// Len returns the number of mirrored entities.
func (s *Scene) Len() int {
	n := len(s.pellets)
	for _, ents := range s.segments {
		n += len(ents)
	}
	return n
}

// DrawList appends every entity visible through cam to dst[:0] and returns
// it ordered for painting: pellets, then AI, then the player, each snake
// tail first so its head ends on top.
func (s *Scene) DrawList(cam camera.Camera, dst []DrawItem) []DrawItem {
	dst = dst[:0]

	query := s.filter.Query()
	for query.Next() {
		pos, spr, tag := query.Get()
		if !cam.IsVisible(pos.X, pos.Y, spr.Radius) {
			continue
		}
		sx, sy := cam.WorldToScreen(pos.X, pos.Y)
		dst = append(dst, DrawItem{
			X:       sx,
			Y:       sy,
			Radius:  spr.Radius * cam.Zoom,
			Color:   spr.Color,
			Layer:   spr.Layer,
			SnakeID: tag.SnakeID,
			Index:   tag.Index,
			Head:    tag.SnakeID != "" && tag.Index == 0,
		})
	}

	slices.SortFunc(dst, func(a, b DrawItem) int {
		if c := cmp.Compare(a.Layer, b.Layer); c != 0 {
			return c
		}
		if c := cmp.Compare(a.SnakeID, b.SnakeID); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Index, a.Index); c != 0 {
			return c
		}
		if c := cmp.Compare(a.X, b.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Y, b.Y)
	})
	return dst
}
