package event

import (
	"fmt"

	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// CollisionEvent carries the outcome of one collision check. The arena builds
// a fresh value for every check and hands it to exactly one Accept call.
type CollisionEvent struct {
	BaseEvent
	Collided         bool
	PointOfContact   physics.Vector2D
	AngleOfContact   float64 // degrees
	CollidedWithWall bool
}

// NewCollisionEvent creates an empty (not collided) collision event.
func NewCollisionEvent(source interface{}) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: Collision,
			Source:    source,
		},
	}
}

// Message returns the human-readable debug line for the event.
func (e *CollisionEvent) Message() string {
	return fmt.Sprintf("Collision event at point %.0f %.0f. Angle %f",
		e.PointOfContact.X, e.PointOfContact.Y, e.AngleOfContact)
}

// RechargeEvent marks that the robot reached the recharge station.
type RechargeEvent struct {
	BaseEvent
}

// NewRechargeEvent creates a recharge event.
func NewRechargeEvent(source interface{}) *RechargeEvent {
	return &RechargeEvent{
		BaseEvent: BaseEvent{
			EventType: Recharge,
			Source:    source,
		},
	}
}

// Message returns the human-readable debug line for the event.
func (e *RechargeEvent) Message() string {
	return "Recharge event: battery restored"
}

// Outcome is the terminal state of a round.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "none"
	}
}

// GameEvent reports a change in the round's state: win, loss or reset.
type GameEvent struct {
	BaseEvent
	Outcome Outcome
	Tick    uint64
}

// NewGameEvent creates a game event of the given type.
func NewGameEvent(eventType Type, source interface{}, outcome Outcome, tick uint64) *GameEvent {
	return &GameEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Outcome: outcome,
		Tick:    tick,
	}
}

// Message returns the line the console prints for the event.
func (e *GameEvent) Message() string {
	switch e.EventType {
	case GameWon:
		return "You win!"
	case GameLost:
		return "You lose!"
	default:
		return "Arena reset"
	}
}
