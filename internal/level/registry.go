package level

import "fmt"

// Registry maps level names to handles in registration order. Every handle
// it creates runs the registry's base transformer first and its platform
// transformer last, with the level's own content in between.
type Registry struct {
	base     Transformer
	platform Transformer
	handles  []*Handle
	byName   map[string]*Handle
}

// NewRegistry creates an empty registry. Either transformer may be nil.
func NewRegistry(base, platform Transformer) *Registry {
	return &Registry{
		base:     base,
		platform: platform,
		byName:   make(map[string]*Handle),
	}
}

// Register adds a level. Names must be unique.
func (r *Registry) Register(name string, content ...Transformer) (*Handle, error) {
	if name == "" {
		return nil, fmt.Errorf("register level: empty name")
	}
	if _, dup := r.byName[name]; dup {
		return nil, fmt.Errorf("register level %q: already registered", name)
	}
	ts := make([]Transformer, 0, len(content)+2)
	ts = append(ts, r.base)
	ts = append(ts, content...)
	ts = append(ts, r.platform)
	h := NewHandle(name, ts...)
	r.handles = append(r.handles, h)
	r.byName[name] = h
	return h, nil
}

func (r *Registry) Get(name string) (*Handle, bool) {
	h, ok := r.byName[name]
	return h, ok
}

// Names returns level names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.handles))
	for i, h := range r.handles {
		names[i] = h.name
	}
	return names
}

func (r *Registry) Len() int { return len(r.handles) }
