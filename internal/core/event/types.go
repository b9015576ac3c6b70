package event

import (
	"fmt"
	"strings"
)

// Named events dispatched through ecs.World.Dispatch.
const (
	KeyDown  = "key_down"  // args: Key
	KeyUp    = "key_up"    // args: Key
	OnUpdate = "on_update" // args: dt float64
	OnWin    = "on_win"
)

// Key is a device-independent key symbol.
type Key int

const (
	None Key = iota
	Up
	Right
	Down
	Left
	Escape
	Enter
	Space
)

var keyNames = map[Key]string{
	None:   "none",
	Up:     "up",
	Right:  "right",
	Down:   "down",
	Left:   "left",
	Escape: "escape",
	Enter:  "enter",
	Space:  "space",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// IsDirection reports whether k is one of the four arrows.
func (k Key) IsDirection() bool {
	return k >= Up && k <= Left
}

// ParseKey resolves a config name such as "escape" to its Key.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("unknown key %q", name)
}

// UnmarshalText lets keys appear by name in TOML and YAML files.
func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Input is one key transition delivered by a platform input source.
type Input struct {
	Name string // KeyDown or KeyUp
	Key  Key
}

// KeyArg extracts the Key argument of a key event. Missing or mistyped
// arguments yield None.
func KeyArg(args []any) Key {
	if len(args) == 0 {
		return None
	}
	k, _ := args[0].(Key)
	return k
}

// DtArg extracts the dt argument of an OnUpdate event.
func DtArg(args []any) float64 {
	if len(args) == 0 {
		return 0
	}
	dt, _ := args[0].(float64)
	return dt
}
