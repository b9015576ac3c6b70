package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nerissimo/game/internal/component"
)

// SpriteEntry describes one pixel shape. Either Art (one text line per row,
// '.' and ' ' are unlit) or Rows/Cols (a solid rectangle) must be given.
type SpriteEntry struct {
	Key   string `yaml:"key"`
	Rows  int    `yaml:"rows"`
	Cols  int    `yaml:"cols"`
	Value *uint8 `yaml:"value"`
	Art   string `yaml:"art"`
}

func (e *SpriteEntry) value() uint8 {
	if e.Value == nil {
		return 0xFF
	}
	return *e.Value
}

// Pixels renders the entry into a fresh buffer.
func (e *SpriteEntry) Pixels() (*component.PixelBuffer, error) {
	if e.Art == "" {
		if e.Rows <= 0 || e.Cols <= 0 {
			return nil, fmt.Errorf("sprite %q: needs art or positive rows/cols", e.Key)
		}
		return component.FilledPixelBuffer(e.Rows, e.Cols, e.value()), nil
	}

	lines := strings.Split(strings.TrimRight(e.Art, "\n"), "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, len(l))
	}
	if cols == 0 {
		return nil, fmt.Errorf("sprite %q: empty art", e.Key)
	}
	buf := component.NewPixelBuffer(len(lines), cols)
	v := e.value()
	for r, l := range lines {
		for c := 0; c < len(l); c++ {
			if l[c] != '.' && l[c] != ' ' {
				buf.Set(r, c, v)
			}
		}
	}
	return buf, nil
}

// SpriteTable holds sprite definitions keyed by resource key.
type SpriteTable struct {
	sprites map[string]*SpriteEntry
	order   []string
}

// LoadSpriteTable loads sprites.yaml.
func LoadSpriteTable(path string) (*SpriteTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sprite table: %w", err)
	}
	var entries []SpriteEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse sprite table: %w", err)
	}
	t := &SpriteTable{sprites: make(map[string]*SpriteEntry, len(entries))}
	for i := range entries {
		e := &entries[i]
		if e.Key == "" {
			return nil, fmt.Errorf("sprite table entry %d: missing key", i)
		}
		if _, dup := t.sprites[e.Key]; dup {
			return nil, fmt.Errorf("sprite table: duplicate key %q", e.Key)
		}
		t.sprites[e.Key] = e
		t.order = append(t.order, e.Key)
	}
	return t, nil
}

// Get returns the sprite with the given key, or nil if none.
func (t *SpriteTable) Get(key string) *SpriteEntry {
	return t.sprites[key]
}

// Keys returns sprite keys in file order.
func (t *SpriteTable) Keys() []string {
	return t.order
}

func (t *SpriteTable) Count() int {
	return len(t.sprites)
}
