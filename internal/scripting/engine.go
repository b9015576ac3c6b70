package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for level scripts.
// Single-goroutine access only (game loop).
type Engine struct {
	vm      *lua.LState
	log     *zap.Logger
	scripts string
	chunks  map[string]*lua.LFunction
	active  *realization
}

// NewEngine creates a Lua engine and loads the shared helpers under
// scriptsDir/core. Level scripts are compiled on demand.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log, scripts: scriptsDir, chunks: make(map[string]*lua.LFunction)}
	e.registerAPI()

	if err := e.loadDir(filepath.Join(scriptsDir, "core")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load core scripts: %w", err)
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// compile loads a level script once; later calls reuse the chunk.
func (e *Engine) compile(name string) (*lua.LFunction, error) {
	if fn, ok := e.chunks[name]; ok {
		return fn, nil
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(e.scripts, name)
	}
	fn, err := e.vm.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}
	e.chunks[name] = fn
	e.log.Debug("compiled level script", zap.String("file", path))
	return fn, nil
}

// Close releases the VM.
func (e *Engine) Close() {
	e.vm.Close()
}
