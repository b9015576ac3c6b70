package resource

import (
	"fmt"

	"github.com/nerissimo/game/internal/data"
)

// FromSpriteTable renders every sprite of t into a new Map.
func FromSpriteTable(t *data.SpriteTable) (*Map, error) {
	m := NewMap()
	for _, key := range t.Keys() {
		buf, err := t.Get(key).Pixels()
		if err != nil {
			return nil, fmt.Errorf("render sprites: %w", err)
		}
		m.Register(key, buf)
	}
	return m, nil
}
