package audio

import (
	"context"

	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/logging"
)

// Cues plays a cue for each audible arena event
type Cues struct {
	player Player
	logger *logging.Logger
	ctx    context.Context
}

// NewCues creates a bus observer playing through player
func NewCues(ctx context.Context, player Player, logger *logging.Logger) *Cues {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Cues{player: player, logger: logger, ctx: ctx}
}

// Attach subscribes to the events that have a cue
func (c *Cues) Attach(bus *event.Bus) {
	bus.SubscribeAll(c.Handle, event.Collision, event.Recharge, event.GameWon, event.GameLost)
}

// Handle is the bus handler
func (c *Cues) Handle(e event.Event) {
	cue, ok := cueFor(e)
	if !ok {
		return
	}
	if err := c.player.Play(cue); err != nil {
		c.logger.Warn(c.ctx, "failed to play cue", "cue", cue.Name, "error", err)
	}
}

// cueFor picks the cue for e
func cueFor(e event.Event) (Cue, bool) {
	switch ev := e.(type) {
	case *event.CollisionEvent:
		if !ev.Collided {
			return Cue{}, false
		}
		if ev.CollidedWithWall {
			return CueWall, true
		}
		return CueBump, true
	case *event.RechargeEvent:
		return CueRecharge, true
	case *event.GameEvent:
		switch ev.GetType() {
		case event.GameWon:
			return CueWin, true
		case event.GameLost:
			return CueLose, true
		}
	}
	return Cue{}, false
}
