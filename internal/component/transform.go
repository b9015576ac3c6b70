package component

import "github.com/nerissimo/game/internal/vmath"

// Transform2D is the position of any spatially simulated entity.
type Transform2D struct {
	Position vmath.Vec2
}

// Velocity is integrated into Transform2D every tick, in pixels per second.
type Velocity struct {
	Value vmath.Vec2
}

// Target marks an entity that is seeking Position. While present, free
// movement requests are ignored.
type Target struct {
	Position vmath.Vec2
}

// EnsureClipped keeps the entity's sprite inside the clip rectangle.
type EnsureClipped struct{}
