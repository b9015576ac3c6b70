package platform

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nerissimo/game/internal/component"
	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/level"
)

const hudHint = "arrows/hjkl move  esc quits"

// Terminal draws the screen buffer with half-block glyphs, two pixel rows per
// cell row, under a one-line HUD with the level title.
type Terminal struct {
	screen tcell.Screen
	log    *zap.Logger
	title  cases.Caser
	style  tcell.Style
	hud    tcell.Style
	last   uint64
	drawn  bool
	skips  int
}

// OpenTerminal initialises the controlling terminal.
func OpenTerminal(log *zap.Logger) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	return NewTerminal(screen, log), nil
}

// NewTerminal wraps an initialised screen.
func NewTerminal(screen tcell.Screen, log *zap.Logger) *Terminal {
	screen.HideCursor()
	return &Terminal{
		screen: screen,
		log:    log,
		title:  cases.Title(language.English),
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		hud:    tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack),
	}
}

func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Skipped counts frames not redrawn because nothing changed.
func (t *Terminal) Skipped() int { return t.skips }

func (t *Terminal) Present(w *ecs.World) {
	buf, ok := level.Screen(w)
	if !ok {
		return
	}
	title := ""
	if _, info, ok := ecs.First[component.LevelInfo](w); ok {
		title = t.title.String(info.Title)
	}
	sum := Digest(buf) ^ xxhash.Sum64String(title)
	if t.drawn && sum == t.last {
		t.skips++
		return
	}
	t.last, t.drawn = sum, true

	t.screen.Clear()
	t.drawText(0, 0, title, t.hud)
	t.drawText(len(title)+2, 0, hudHint, t.style)
	for r := 0; r < buf.Rows; r += 2 {
		y := 1 + r/2
		for c := 0; c < buf.Cols; c++ {
			top := buf.At(r, c) != 0
			bottom := r+1 < buf.Rows && buf.At(r+1, c) != 0
			t.screen.SetContent(c, y, halfBlock(top, bottom), nil, t.style)
		}
	}
	t.screen.Show()
}

func (t *Terminal) drawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		t.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	}
	return ' '
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}
