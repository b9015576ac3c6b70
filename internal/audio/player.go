package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(48000)

// Player owns the speaker and mixes short one-shot sounds into it.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	log         *zap.Logger
	initialized bool
}

func NewPlayer(log *zap.Logger) *Player {
	return &Player{mixer: &beep.Mixer{}, log: log}
}

// Initialize opens the speaker. Safe to call more than once.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.mixer.Clear()
	speaker.Close()
	p.initialized = false
}

// Chime plays the level-complete arpeggio. No-op before Initialize.
func (p *Player) Chime() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Add(NewChimeGenerator(sampleRate))
	speaker.Unlock()
	p.log.Debug("chime")
}
