package loop

import (
	"context"
	"time"
)

// Clock paces the loop and supplies each frame's dt in seconds.
type Clock interface {
	Wait(ctx context.Context) (float64, error)
}

// TickerClock waits for a wall-clock ticker. With a positive fixed dt every
// frame reports that value; otherwise the measured interval is used.
type TickerClock struct {
	ticker  *time.Ticker
	fixedDt float64
	last    time.Time
}

func NewTickerClock(interval time.Duration, fixedDt float64) *TickerClock {
	return &TickerClock{
		ticker:  time.NewTicker(interval),
		fixedDt: fixedDt,
		last:    time.Now(),
	}
}

func (c *TickerClock) Wait(ctx context.Context) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case now := <-c.ticker.C:
		dt := now.Sub(c.last).Seconds()
		c.last = now
		if c.fixedDt > 0 {
			return c.fixedDt, nil
		}
		return dt, nil
	}
}

func (c *TickerClock) Stop() { c.ticker.Stop() }

// StepClock returns Dt immediately, for tests and headless runs. A positive
// Limit ends the run with ErrClockExhausted after that many frames.
type StepClock struct {
	Dt    float64
	Limit int

	frames int
}

func (c *StepClock) Wait(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if c.Limit > 0 && c.frames >= c.Limit {
		return 0, ErrClockExhausted
	}
	c.frames++
	return c.Dt, nil
}

func (c *StepClock) Frames() int { return c.frames }
