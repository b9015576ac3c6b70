package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ControllerNone   = ""
	ControllerUser   = "user"
	ControllerKnight = "knight"
)

// OscillateSpec attaches an oscillating controller to an entity.
type OscillateSpec struct {
	Axis      string  `yaml:"axis"` // "row" or "col"
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// EntitySpec is one entity placed by a level.
type EntitySpec struct {
	Sprite     string         `yaml:"sprite"`
	Position   [2]float64     `yaml:"position"`
	Velocity   *[2]float64    `yaml:"velocity"`
	Clipped    bool           `yaml:"clipped"`
	Controller string         `yaml:"controller"`
	Speed      float64        `yaml:"speed"` // user controller only, 0 = configured default
	Oscillate  *OscillateSpec `yaml:"oscillate"`
}

// LevelEntry defines one level's content. Script is resolved relative to the
// configured scripts directory.
type LevelEntry struct {
	Name     string       `yaml:"name"`
	Title    string       `yaml:"title"`
	Script   string       `yaml:"script"`
	Entities []EntitySpec `yaml:"entities"`
}

// LevelTable keeps level definitions in file order.
type LevelTable struct {
	levels map[string]*LevelEntry
	order  []string
}

// LoadLevelTable loads levels.yaml.
func LoadLevelTable(path string) (*LevelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level table: %w", err)
	}
	var entries []LevelEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse level table: %w", err)
	}
	t := &LevelTable{levels: make(map[string]*LevelEntry, len(entries))}
	for i := range entries {
		e := &entries[i]
		if err := e.validate(); err != nil {
			return nil, fmt.Errorf("level table entry %d: %w", i, err)
		}
		if _, dup := t.levels[e.Name]; dup {
			return nil, fmt.Errorf("level table: duplicate level %q", e.Name)
		}
		if e.Title == "" {
			e.Title = e.Name
		}
		t.levels[e.Name] = e
		t.order = append(t.order, e.Name)
	}
	return t, nil
}

func (e *LevelEntry) validate() error {
	if e.Name == "" {
		return fmt.Errorf("missing name")
	}
	for i, spec := range e.Entities {
		switch spec.Controller {
		case ControllerNone, ControllerUser, ControllerKnight:
		default:
			return fmt.Errorf("level %q entity %d: unknown controller %q", e.Name, i, spec.Controller)
		}
		if o := spec.Oscillate; o != nil && o.Axis != "row" && o.Axis != "col" {
			return fmt.Errorf("level %q entity %d: oscillate axis %q", e.Name, i, o.Axis)
		}
	}
	return nil
}

// Get returns the level with the given name, or nil if none.
func (t *LevelTable) Get(name string) *LevelEntry {
	return t.levels[name]
}

// Names returns level names in file order.
func (t *LevelTable) Names() []string {
	return t.order
}

func (t *LevelTable) Count() int {
	return len(t.levels)
}
