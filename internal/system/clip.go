package system

import (
	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	coresys "github.com/nerissimo/game/internal/core/system"
	"github.com/nerissimo/game/internal/vmath"
)

// ClipSystem keeps every EnsureClipped entity's sprite inside Rect. Runs
// after everything that moves entities.
type ClipSystem struct {
	world *ecs.World
	rect  vmath.Rect
}

func NewClipSystem(world *ecs.World, rect vmath.Rect) *ClipSystem {
	return &ClipSystem{world: world, rect: rect}
}

// Rect returns the clip rectangle. Controllers validate moves against it.
func (s *ClipSystem) Rect() vmath.Rect { return s.rect }

func (s *ClipSystem) Update(_ float64) coresys.Signal {
	ecs.Each2(s.world, func(id ecs.EntityID, _ *component.EnsureClipped, t *component.Transform2D) {
		sprite, _ := ecs.GetComponent[component.Sprite](s.world, id)
		rows, cols := sprite.Size()
		t.Position = s.rect.ClampShape(t.Position, rows, cols)
	})
	return coresys.SignalNone
}
