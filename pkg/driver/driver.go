// Package driver paces the arena against wall-clock time and routes viewer
// input into it. All arena access happens on the goroutine running the
// driver.
package driver

import (
	"context"
	"time"

	"github.com/opd-ai/go-robotarena/pkg/arena"
	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/logging"
)

// DefaultTickInterval is the wall-clock length of one tick.
const DefaultTickInterval = 50 * time.Millisecond

// Control is a viewer-level action
type Control int

const (
	ControlKey Control = iota
	ControlPause
	ControlRestart
	ControlQuit
)

// Input is one action from a viewer. Key is the raw key code for
// ControlKey.
type Input struct {
	Control Control
	Key     int
}

// KeyInput returns the Input for a raw key code.
func KeyInput(code int) Input {
	return Input{Control: ControlKey, Key: code}
}

// Driver advances an arena at a fixed rate.
type Driver struct {
	arena    *arena.Arena
	renderer entity.Renderer
	logger   *logging.Logger

	interval    time.Duration
	accumulator time.Duration
	paused      bool
	quit        bool

	inputs chan Input
}

// New creates a driver ticking a every interval and drawing to r. A zero
// interval means DefaultTickInterval; r and logger may be nil.
func New(a *arena.Arena, r entity.Renderer, interval time.Duration, logger *logging.Logger) *Driver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Driver{
		arena:    a,
		renderer: r,
		logger:   logger,
		interval: interval,
		inputs:   make(chan Input, 64),
	}
}

// IntervalFromRate converts ticks per second to a tick interval.
func IntervalFromRate(rate float64) time.Duration {
	if rate <= 0 {
		return DefaultTickInterval
	}
	return time.Duration(float64(time.Second) / rate)
}

// Send queues an input for the driver goroutine. It never blocks; input
// arriving while the queue is full is dropped.
func (d *Driver) Send(in Input) bool {
	select {
	case d.inputs <- in:
		return true
	default:
		return false
	}
}

// Paused reports whether ticking is suspended.
func (d *Driver) Paused() bool { return d.paused }

// Quit reports whether a quit was requested.
func (d *Driver) Quit() bool { return d.quit }

// Arena returns the driven arena.
func (d *Driver) Arena() *arena.Arena { return d.arena }

// Handle applies one input. Keys reach the arena between ticks; keys that
// do not map to a command are ignored here so a stray key cannot abort
// the program.
func (d *Driver) Handle(in Input) {
	ctx := context.Background()
	switch in.Control {
	case ControlKey:
		if _, err := event.ParseKey(in.Key); err != nil {
			d.logger.Debug(ctx, "ignoring key", "keycode", in.Key)
			return
		}
		if d.paused || d.arena.GameOver() {
			return
		}
		d.arena.Accept(event.NewKeypressEvent(d, in.Key))
	case ControlPause:
		d.paused = !d.paused
		d.logger.Info(ctx, "pause toggled", "paused", d.paused)
	case ControlRestart:
		d.arena.Reset()
		d.paused = false
		d.accumulator = 0
		d.logger.Info(ctx, "arena restarted")
	case ControlQuit:
		d.quit = true
	}
}

// drain applies every queued input.
func (d *Driver) drain() {
	for {
		select {
		case in := <-d.inputs:
			d.Handle(in)
		default:
			return
		}
	}
}

// Step adds elapsed wall-clock time and runs as many whole ticks as it
// covers. It returns the number of ticks run.
func (d *Driver) Step(elapsed time.Duration) int {
	d.drain()
	if d.paused {
		return 0
	}

	d.accumulator += elapsed
	ticks := 0
	for d.accumulator >= d.interval {
		d.accumulator -= d.interval
		if d.arena.GameOver() {
			continue
		}
		d.arena.AdvanceTime()
		ticks++
	}
	return ticks
}

// Draw renders the arena if a renderer is set.
func (d *Driver) Draw() {
	if d.renderer != nil {
		d.arena.Render(d.renderer)
	}
}

// RunTicks advances up to n ticks as fast as possible and stops early when
// the game ends. It returns the number of ticks run.
func (d *Driver) RunTicks(n int) int {
	ran := 0
	for ran < n && !d.arena.GameOver() {
		d.drain()
		if d.quit {
			break
		}
		d.arena.AdvanceTime()
		ran++
	}
	d.Draw()
	return ran
}

// Run ticks in real time until ctx is cancelled or a quit input arrives,
// drawing once per tick interval.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	last := time.Now()
	d.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in := <-d.inputs:
			d.Handle(in)
			if d.quit {
				return nil
			}
			d.Draw()
		case now := <-ticker.C:
			d.Step(now.Sub(last))
			last = now
			if d.quit {
				return nil
			}
			d.Draw()
		}
	}
}
