package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-robotarena/pkg/arena"
	"github.com/opd-ai/go-robotarena/pkg/driver"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/logging"
)

// inputFor maps a terminal key to a driver input
func inputFor(key tcell.Key, ch rune) (driver.Input, bool) {
	switch key {
	case tcell.KeyLeft:
		return driver.KeyInput(event.KeyLeft), true
	case tcell.KeyRight:
		return driver.KeyInput(event.KeyRight), true
	case tcell.KeyUp:
		return driver.KeyInput(event.KeyUp), true
	case tcell.KeyDown:
		return driver.KeyInput(event.KeyDown), true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return driver.Input{Control: driver.ControlQuit}, true
	case tcell.KeyRune:
		switch ch {
		case 'p', 'P', ' ':
			return driver.Input{Control: driver.ControlPause}, true
		case 'r', 'R':
			return driver.Input{Control: driver.ControlRestart}, true
		case 'q', 'Q':
			return driver.Input{Control: driver.ControlQuit}, true
		}
	}
	return driver.Input{}, false
}

// Listen forwards key presses from screen to d until the screen is
// finalised or ctx ends.
func Listen(ctx context.Context, screen tcell.Screen, d *driver.Driver) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if in, ok := inputFor(ev.Key(), ev.Rune()); ok {
				d.Send(in)
			}
		case *tcell.EventResize:
			screen.Sync()
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Run drives a on an initialised screen until quit or ctx ends. The caller
// owns the screen and must Fini it, which also stops the input listener.
func Run(ctx context.Context, screen tcell.Screen, a *arena.Arena, interval time.Duration, logger *logging.Logger) error {
	renderer := NewScreenRenderer(screen, a.Width(), a.Height())
	d := driver.New(a, renderer, interval, logger)

	go Listen(ctx, screen, d)

	err := d.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
