package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/nerissimo/game/internal/core/ecs"
	"github.com/nerissimo/game/internal/core/event"
	coresys "github.com/nerissimo/game/internal/core/system"
)

// chimeNotes is a rising major arpeggio (C5 E5 G5 C6).
var chimeNotes = []float64{523.25, 659.25, 783.99, 1046.50}

const chimeNote = 120 * time.Millisecond

// ChimeGenerator streams a short sine arpeggio with a per-note decay, then
// reports exhaustion so the mixer drops it.
type ChimeGenerator struct {
	sr      beep.SampleRate
	pos     int
	perNote int
}

func NewChimeGenerator(sr beep.SampleRate) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, perNote: sr.N(chimeNote)}
}

// Len is the total number of samples the chime produces.
func (g *ChimeGenerator) Len() int { return g.perNote * len(chimeNotes) }

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	total := g.Len()
	if g.pos >= total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= total {
			return i, true
		}
		note := g.pos / g.perNote
		within := float64(g.pos%g.perNote) / float64(g.sr)
		t := float64(g.pos) / float64(g.sr)

		envelope := math.Exp(-within * 18)
		attack := math.Min(within/0.005, 1.0)
		sample := 0.25 * attack * envelope * math.Sin(2*math.Pi*chimeNotes[note]*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// Chimer plays the win sound.
type Chimer interface {
	Chime()
}

// ChimeOnWin plays a chime when the level is won. It never signals the loop.
type ChimeOnWin struct {
	Player Chimer
}

func (c *ChimeOnWin) Handlers() map[string]ecs.Handler {
	return map[string]ecs.Handler{
		event.OnWin: func(*ecs.World, ecs.EntityID, ...any) coresys.Signal {
			if c.Player != nil {
				c.Player.Chime()
			}
			return coresys.SignalNone
		},
	}
}
