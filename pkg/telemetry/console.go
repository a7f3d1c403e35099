package telemetry

import (
	"fmt"
	"io"

	"github.com/ttacon/chalk"

	"github.com/opd-ai/go-robotarena/pkg/event"
)

// ConsoleSink prints the human-readable event lines: the round result
// always, collisions and recharges when verbose.
type ConsoleSink struct {
	out     io.Writer
	verbose bool
	color   bool
}

// NewConsoleSink creates a console printer. color enables ANSI colors.
func NewConsoleSink(out io.Writer, verbose, color bool) *ConsoleSink {
	return &ConsoleSink{out: out, verbose: verbose, color: color}
}

// Attach subscribes the printer to the bus.
func (c *ConsoleSink) Attach(bus *event.Bus) {
	bus.SubscribeAll(c.Handle, event.Collision, event.Recharge, event.GameWon, event.GameLost)
}

// Handle is the bus handler.
func (c *ConsoleSink) Handle(e event.Event) {
	switch ev := e.(type) {
	case *event.GameEvent:
		switch ev.GetType() {
		case event.GameWon:
			c.println(chalk.Green, ev.Message())
		case event.GameLost:
			c.println(chalk.Red, ev.Message())
		}
	case *event.CollisionEvent:
		if c.verbose {
			c.println(chalk.Yellow, ev.Message())
		}
	case *event.RechargeEvent:
		if c.verbose {
			c.println(chalk.Cyan, ev.Message())
		}
	}
}

func (c *ConsoleSink) println(col chalk.Color, msg string) {
	if c.color {
		msg = col.Color(msg)
	}
	fmt.Fprintln(c.out, msg)
}
