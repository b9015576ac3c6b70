package platform

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/nerissimo/game/internal/core/event"
)

// DefaultRelease is how long a key may go without repeating before the key
// source reports it released. Terminals only deliver presses, and the first
// auto-repeat typically arrives after 250-500ms.
const DefaultRelease = 500 * time.Millisecond

// KeyOf maps a terminal key (and its rune for tcell.KeyRune) to a game key.
func KeyOf(k tcell.Key, r rune) (event.Key, bool) {
	switch k {
	case tcell.KeyUp:
		return event.Up, true
	case tcell.KeyRight:
		return event.Right, true
	case tcell.KeyDown:
		return event.Down, true
	case tcell.KeyLeft:
		return event.Left, true
	case tcell.KeyEscape:
		return event.Escape, true
	case tcell.KeyEnter:
		return event.Enter, true
	case tcell.KeyRune:
		switch r {
		case 'k', 'w':
			return event.Up, true
		case 'l', 'd':
			return event.Right, true
		case 'j', 's':
			return event.Down, true
		case 'h', 'a':
			return event.Left, true
		case ' ':
			return event.Space, true
		}
	}
	return event.None, false
}

// Poller is the part of tcell.Screen the key source needs.
type Poller interface {
	PollEvent() tcell.Event
	PostEvent(ev tcell.Event) error
}

// KeySource pumps terminal key presses into an input queue. A press is
// pushed as key_down; key_up follows once the key stops auto-repeating.
type KeySource struct {
	poller    Poller
	queue     *event.Queue
	release   time.Duration
	interrupt func()
	log       *zap.Logger

	mu   sync.Mutex
	held map[event.Key]time.Time
}

// NewKeySource creates a source. interrupt is called on Ctrl-C, which the
// terminal swallows before it can become SIGINT.
func NewKeySource(poller Poller, queue *event.Queue, release time.Duration, interrupt func(), log *zap.Logger) *KeySource {
	if release <= 0 {
		release = DefaultRelease
	}
	return &KeySource{
		poller:    poller,
		queue:     queue,
		release:   release,
		interrupt: interrupt,
		log:       log,
		held:      make(map[event.Key]time.Time),
	}
}

// Run polls until ctx is done or the screen is finalised.
func (s *KeySource) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.poller.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()
	go s.releaseLoop(ctx, done)

	for {
		ev := s.poller.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return nil
			}
		case *tcell.EventKey:
			s.press(ev.Key(), ev.Rune(), ev.When())
		}
	}
}

// press records one terminal key press at now.
func (s *KeySource) press(k tcell.Key, r rune, now time.Time) {
	if k == tcell.KeyCtrlC {
		s.log.Info("interrupt from terminal")
		if s.interrupt != nil {
			s.interrupt()
		}
		return
	}
	key, ok := KeyOf(k, r)
	if !ok {
		return
	}
	s.mu.Lock()
	_, repeating := s.held[key]
	s.held[key] = now
	s.mu.Unlock()
	if !repeating {
		s.queue.Push(event.Input{Name: event.KeyDown, Key: key})
	}
}

func (s *KeySource) releaseLoop(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(s.release / 4)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case now := <-ticker.C:
			s.releaseExpired(now)
		}
	}
}

// releaseExpired pushes key_up for every key idle for longer than release.
func (s *KeySource) releaseExpired(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, last := range s.held {
		if now.Sub(last) >= s.release {
			delete(s.held, key)
			s.queue.Push(event.Input{Name: event.KeyUp, Key: key})
		}
	}
}
