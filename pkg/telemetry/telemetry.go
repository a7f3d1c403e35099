// Package telemetry observes arena events on the bus. Nothing here feeds
// back into the simulation.
package telemetry

import (
	"context"
	"sync"

	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/logging"
)

// Stats counts events for the current round
type Stats struct {
	Collisions     int
	WallCollisions int
	Recharges      int
	Commands       int
}

// LogSink keeps per-round counters and logs a summary line when a round
// is won or lost. Every arena reset starts a new round.
type LogSink struct {
	logger *logging.Logger
	ctx    context.Context

	mu     sync.Mutex
	stats  Stats
	reset  Stats // round ended by the last reset
	rounds int
}

// NewLogSink creates a sink logging with logger under ctx.
func NewLogSink(ctx context.Context, logger *logging.Logger) *LogSink {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &LogSink{logger: logger, ctx: ctx}
}

// Attach subscribes the sink to every event type it handles.
func (s *LogSink) Attach(bus *event.Bus) {
	bus.SubscribeAll(s.Handle,
		event.Collision, event.Recharge, event.Keypress,
		event.GameWon, event.GameLost, event.ArenaReset)
}

// Handle is the bus handler.
func (s *LogSink) Handle(e event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev := e.(type) {
	case *event.CollisionEvent:
		if ev.CollidedWithWall {
			s.stats.WallCollisions++
		} else {
			s.stats.Collisions++
		}
	case *event.RechargeEvent:
		s.stats.Recharges++
	case *event.KeypressEvent:
		s.stats.Commands++
	case *event.GameEvent:
		s.handleGameEvent(ev)
	}
}

func (s *LogSink) handleGameEvent(ev *event.GameEvent) {
	var round Stats
	switch ev.GetType() {
	case event.ArenaReset:
		s.reset = s.stats
		s.stats = Stats{}
		return
	case event.GameWon:
		// the win's own reset went out first
		round = s.reset
	default:
		round = s.stats
		s.stats = Stats{}
	}
	s.reset = Stats{}

	s.rounds++
	s.logger.Info(s.ctx, "round over",
		"outcome", ev.Outcome.String(),
		"tick", ev.Tick,
		"round", s.rounds,
		"collisions", round.Collisions,
		"wall_collisions", round.WallCollisions,
		"recharges", round.Recharges,
		"commands", round.Commands,
	)
}

// Stats returns the counters for the round in progress.
func (s *LogSink) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Rounds returns how many rounds have ended.
func (s *LogSink) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}
