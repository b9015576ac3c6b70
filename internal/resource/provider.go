package resource

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nerissimo/game/internal/component"
)

// ErrNotFound is returned when no asset is registered under a key.
var ErrNotFound = errors.New("resource not found")

// Provider resolves named pixel assets.
type Provider interface {
	Lookup(key string) (*component.PixelBuffer, error)
}

// Map is an in-memory Provider. Keys of the form "square/<rows>x<cols>"
// (optionally "square/<rows>x<cols>/<value>") are generated on demand and
// need no registration.
type Map struct {
	assets map[string]*component.PixelBuffer
}

func NewMap() *Map {
	return &Map{assets: make(map[string]*component.PixelBuffer)}
}

// Register stores buf under key, replacing any previous asset.
func (m *Map) Register(key string, buf *component.PixelBuffer) {
	m.assets[key] = buf
}

func (m *Map) Count() int { return len(m.assets) }

func (m *Map) Lookup(key string) (*component.PixelBuffer, error) {
	if buf, ok := m.assets[key]; ok {
		return buf, nil
	}
	if strings.HasPrefix(key, "square/") {
		buf, err := parseSquare(strings.TrimPrefix(key, "square/"))
		if err != nil {
			return nil, fmt.Errorf("resource %q: %w", key, err)
		}
		m.assets[key] = buf
		return buf, nil
	}
	return nil, fmt.Errorf("resource %q: %w", key, ErrNotFound)
}

func parseSquare(spec string) (*component.PixelBuffer, error) {
	value := uint8(0xFF)
	parts := strings.Split(spec, "/")
	if len(parts) > 2 {
		return nil, fmt.Errorf("malformed square spec %q", spec)
	}
	if len(parts) == 2 {
		v, err := strconv.ParseUint(parts[1], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("square value: %w", err)
		}
		value = uint8(v)
	}
	dims := strings.Split(parts[0], "x")
	if len(dims) != 2 {
		return nil, fmt.Errorf("malformed square size %q", parts[0])
	}
	rows, err := strconv.Atoi(dims[0])
	if err != nil || rows <= 0 {
		return nil, fmt.Errorf("square rows %q", dims[0])
	}
	cols, err := strconv.Atoi(dims[1])
	if err != nil || cols <= 0 {
		return nil, fmt.Errorf("square cols %q", dims[1])
	}
	return component.FilledPixelBuffer(rows, cols, value), nil
}
