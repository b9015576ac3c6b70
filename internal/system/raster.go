package system

import (
	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// RasterSystem composes the screen buffer: it clears it, then XORs every
// sprite in at its rounded position. Identical shapes stacked exactly on top
// of each other cancel to black.
type RasterSystem struct {
	world  *ecs.World
	screen *component.PixelBuffer
}

func NewRasterSystem(world *ecs.World, screen *component.PixelBuffer) *RasterSystem {
	return &RasterSystem{world: world, screen: screen}
}

func (s *RasterSystem) Update(_ float64) coresys.Signal {
	s.screen.Fill(0)
	ecs.Each2(s.world, func(_ ecs.EntityID, sprite *component.Sprite, t *component.Transform2D) {
		if sprite.Pixels == nil {
			return
		}
		pos := t.Position.Round()
		s.screen.XorBlit(sprite.Pixels, int(pos[0]), int(pos[1]))
	})
	return coresys.SignalNone
}
