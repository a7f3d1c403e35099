// pkg/arena/arena.go
package arena

import (
	"context"
	"fmt"

	"github.com/opd-ai/go-robotarena/pkg/config"
	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/logging"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// TimeStep is the logical length of one tick
const TimeStep = 1.0

// Arena owns every entity and runs the per-tick simulation. It is not safe
// for concurrent use; callers serialise ticks, input and reads.
type Arena struct {
	width  float64
	height float64

	robot           *entity.Robot
	homeBase        *entity.HomeBase
	rechargeStation *entity.RechargeStation
	obstacles       []*entity.Obstacle

	entities       []entity.Entity
	mobileEntities []entity.Mobile

	ids         *entity.IDAllocator
	gameOver    bool
	outcome     event.Outcome
	currentTick uint64

	// EventBus fans simulation events out to observers. Entities are never
	// reached through it.
	EventBus *event.Bus
	Logger   *logging.Logger
	ctx      context.Context
}

// New builds an arena from cfg. A nil bus or logger gets a fresh bus or a
// discarding logger.
func New(cfg *config.ArenaConfig, bus *event.Bus, logger *logging.Logger) (*Arena, error) {
	if cfg == nil {
		return nil, fmt.Errorf("arena: nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, logging.WrapError(err, "invalid arena config")
	}
	if bus == nil {
		bus = event.NewEventBus()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	a := &Arena{
		width:    cfg.Width,
		height:   cfg.Height,
		ids:      entity.NewIDAllocator(),
		EventBus: bus,
		Logger:   logger,
		ctx:      context.Background(),
	}
	if err := a.initEntities(cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// initEntities builds the entities in list order: robot, home base,
// recharge station, then obstacles.
func (a *Arena) initEntities(cfg *config.ArenaConfig) error {
	robotColor, err := cfg.Robot.RGBA()
	if err != nil {
		return logging.WrapError(err, "robot")
	}
	a.robot = entity.NewRobot(a.ids, entity.RobotParams{
		Radius:           cfg.Robot.Radius,
		Position:         cfg.Robot.Position(),
		Color:            robotColor,
		CollisionDelta:   cfg.Robot.CollisionDelta,
		BatteryMaxCharge: cfg.Robot.BatteryMaxCharge,
		AngleDelta:       cfg.Robot.AngleDelta,
		InitialHeading:   cfg.Robot.InitialHeading,
		InitialSpeed:     cfg.Robot.InitialSpeed,
		MaxSpeed:         cfg.Robot.MaxSpeed,
	})

	homeColor, err := cfg.HomeBase.RGBA()
	if err != nil {
		return logging.WrapError(err, "home base")
	}
	a.homeBase = entity.NewHomeBase(a.ids, entity.HomeBaseParams{
		Radius:         cfg.HomeBase.Radius,
		Position:       cfg.HomeBase.Position(),
		Color:          homeColor,
		Heading:        cfg.HomeBase.Heading,
		Speed:          cfg.HomeBase.Speed,
		CollisionDelta: cfg.HomeBase.CollisionDelta,
	})

	stationColor, err := cfg.RechargeStation.RGBA()
	if err != nil {
		return logging.WrapError(err, "recharge station")
	}
	a.rechargeStation = entity.NewRechargeStation(a.ids, entity.ImmobileParams{
		Radius:   cfg.RechargeStation.Radius,
		Position: cfg.RechargeStation.Position(),
		Color:    stationColor,
	})

	a.entities = []entity.Entity{a.robot, a.homeBase, a.rechargeStation}
	a.mobileEntities = []entity.Mobile{a.robot, a.homeBase}

	for i, oc := range cfg.Obstacles {
		c, err := oc.RGBA()
		if err != nil {
			return logging.WrapError(err, "obstacle %d", i)
		}
		o := entity.NewObstacle(a.ids, entity.ImmobileParams{
			Radius:   oc.Radius,
			Position: oc.Position(),
			Color:    c,
		})
		a.obstacles = append(a.obstacles, o)
		a.entities = append(a.entities, o)
	}
	return nil
}

// SetContext sets the context carried on log lines, typically one holding
// a correlation id.
func (a *Arena) SetContext(ctx context.Context) {
	if ctx != nil {
		a.ctx = ctx
	}
}

// AdvanceTime runs one tick unless the game is over.
func (a *Arena) AdvanceTime() {
	if a.gameOver {
		return
	}
	a.updateEntitiesTimestep(TimeStep)
}

// updateEntitiesTimestep is the tick pipeline. The order of the steps is
// part of the simulation's behaviour: sensors read during the move hold
// the previous tick's contacts.
func (a *Arena) updateEntitiesTimestep(dt float64) {
	a.currentTick++

	for _, ent := range a.entities {
		ent.TimestepUpdate(dt)
	}

	a.checkBattery()
	a.checkHomeBase()
	a.checkRechargeStation()
	a.processCollisions()
}

// checkBattery ends the game once the robot's charge is gone.
func (a *Arena) checkBattery() {
	if a.robot.BatteryLevel() > 0 {
		return
	}
	a.gameOver = true
	a.outcome = event.OutcomeLost
	a.Logger.Info(a.ctx, "robot battery depleted", "tick", a.currentTick)
	a.EventBus.Publish(event.NewGameEvent(event.GameLost, a.robot, event.OutcomeLost, a.currentTick))
}

// checkHomeBase resets the arena and ends the game when the robot reaches
// the home base. The rest of the tick runs on the reset arena.
func (a *Arena) checkHomeBase() {
	ec := event.NewCollisionEvent(a.robot)
	a.CheckForEntityCollision(a.robot, a.homeBase, ec, a.robot.CollisionDelta())
	if !ec.Collided {
		return
	}

	tick := a.currentTick
	a.Reset()
	a.gameOver = true
	a.outcome = event.OutcomeWon
	a.Logger.Info(a.ctx, "robot reached home base", "tick", tick)
	a.EventBus.Publish(event.NewGameEvent(event.GameWon, a.robot, event.OutcomeWon, tick))
}

// checkRechargeStation refills the robot and marks the tick so the general
// collision pass does not also charge a bump penalty.
func (a *Arena) checkRechargeStation() {
	ec := event.NewCollisionEvent(a.robot)
	a.CheckForEntityCollision(a.robot, a.rechargeStation, ec, a.robot.CollisionDelta())
	if !ec.Collided {
		return
	}

	er := event.NewRechargeEvent(a.robot)
	a.robot.AcceptRecharge(er)
	a.robot.SetHitRechargeStation(true)
	a.Logger.Debug(a.ctx, er.Message(), "entity", a.robot.Name(), "tick", a.currentTick)
	a.EventBus.Publish(er)
}

// processCollisions gives every mobile entity exactly one collision event
// for the tick: the wall it is touching, else the first entity in list
// order it touches, else a miss.
func (a *Arena) processCollisions() {
	index := a.buildIndex()

	for _, ent := range a.mobileEntities {
		ec := event.NewCollisionEvent(ent)
		a.CheckForEntityOutOfBounds(ent, ec)

		if !ec.Collided {
			candidates := index.Candidates(ent.Collider(), ent.CollisionDelta())
			for _, other := range a.entities {
				if other == entity.Entity(ent) {
					continue
				}
				if index != nil {
					if _, ok := candidates[other]; !ok {
						continue
					}
				}
				a.CheckForEntityCollision(ent, other, ec, ent.CollisionDelta())
				if ec.Collided {
					a.Logger.Debug(a.ctx, ec.Message(),
						"entity", ent.Name(), "with", other.Name(), "tick", a.currentTick)
					break
				}
			}
		}

		ent.Accept(ec)
		if ec.Collided {
			a.EventBus.Publish(ec)
		}
	}
}

// buildIndex indexes every entity's current position. A nil index means
// every entity is a candidate.
func (a *Arena) buildIndex() *physics.Index {
	items := make([]physics.Item, len(a.entities))
	for i, ent := range a.entities {
		items[i] = ent
	}
	index, err := physics.NewIndex(items)
	if err != nil {
		a.Logger.Warn(a.ctx, "broad phase unavailable, scanning all entities", "error", err.Error())
		return nil
	}
	return index
}

// Reset returns every entity and the game state to how New built them.
func (a *Arena) Reset() {
	a.ids.Reset()
	for _, ent := range a.entities {
		ent.Reset()
	}
	a.gameOver = false
	a.outcome = event.OutcomeNone
	a.currentTick = 0
	a.EventBus.Publish(event.NewGameEvent(event.ArenaReset, a, event.OutcomeNone, 0))
}

// Accept forwards a keypress to the robot. Unknown key codes panic.
func (a *Arena) Accept(e *event.KeypressEvent) {
	cmd := e.Command()
	a.robot.EventCmd(cmd)
	a.Logger.Debug(a.ctx, "command", "command", cmd.String(), "keycode", e.Key)
	a.EventBus.Publish(e)
}
