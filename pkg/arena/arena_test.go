package arena

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/opd-ai/go-robotarena/pkg/config"
	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// emptyConfig is a 1000x1000 arena with the robot in the middle and the
// home base and recharge station parked in far corners.
func emptyConfig() *config.ArenaConfig {
	cfg := config.DefaultConfig()
	cfg.Width, cfg.Height = 1000, 1000
	cfg.Robot.X, cfg.Robot.Y = 500, 500
	cfg.HomeBase.X, cfg.HomeBase.Y = 900, 900
	cfg.HomeBase.Speed = 0
	cfg.RechargeStation.X, cfg.RechargeStation.Y = 100, 900
	cfg.Obstacles = nil
	return cfg
}

func newArena(t *testing.T, cfg *config.ArenaConfig) *Arena {
	t.Helper()
	a, err := New(cfg, nil, nil)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return a
}

func TestNew_BuildsEntityLists(t *testing.T) {
	a := newArena(t, config.DefaultConfig())

	if len(a.Entities()) != 8 {
		t.Fatalf("entities = %d, want 8", len(a.Entities()))
	}
	if len(a.Obstacles()) != 5 {
		t.Errorf("obstacles = %d, want 5", len(a.Obstacles()))
	}

	mobile := a.MobileEntities()
	if len(mobile) != 2 || mobile[0] != entity.Mobile(a.Robot()) || mobile[1] != entity.Mobile(a.HomeBase()) {
		t.Fatalf("mobile entities = %v", mobile)
	}

	for _, ent := range a.Entities() {
		_, isMobile := ent.(entity.Mobile)
		if ent.IsMobile() != isMobile {
			t.Errorf("%s: IsMobile() = %v but implements Mobile = %v", ent.Name(), ent.IsMobile(), isMobile)
		}
	}

	wantNames := []string{"Robot0", "HomeBase0", "RechargeStation0",
		"Obstacle0", "Obstacle1", "Obstacle2", "Obstacle3", "Obstacle4"}
	for i, ent := range a.Entities() {
		if ent.Name() != wantNames[i] {
			t.Errorf("entity %d = %s, want %s", i, ent.Name(), wantNames[i])
		}
	}

	if a.Width() != 1024 || a.Height() != 768 || a.GameOver() {
		t.Error("fresh arena has wrong dimensions or is already over")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Width = 0

	if _, err := New(cfg, nil, nil); !errors.Is(err, config.ErrInvalidDimensions) {
		t.Errorf("New() error = %v, want ErrInvalidDimensions", err)
	}
	if _, err := New(nil, nil, nil); err == nil {
		t.Error("New(nil) should fail")
	}
}

func TestAccept_Keypress(t *testing.T) {
	a := newArena(t, config.DefaultConfig())

	a.Accept(event.NewKeypressEvent(nil, event.KeyLeft))
	a.Accept(event.NewKeypressEvent(nil, event.KeyDown))

	if a.Robot().HeadingAngle() != 260 || a.Robot().Speed() != 4 {
		t.Errorf("heading/speed = %v/%v, want 260/4", a.Robot().HeadingAngle(), a.Robot().Speed())
	}
}

func TestAccept_UnknownKeyPanics(t *testing.T) {
	a := newArena(t, config.DefaultConfig())
	defer func() {
		if recover() == nil {
			t.Error("unknown key code did not panic")
		}
	}()
	a.Accept(event.NewKeypressEvent(nil, 32))
}

func TestReset_RoundTrip(t *testing.T) {
	a := newArena(t, config.DefaultConfig())

	before := a.Snapshot()
	ids := entityIDs(a)

	a.Accept(event.NewKeypressEvent(nil, event.KeyRight))
	for i := 0; i < 30; i++ {
		a.AdvanceTime()
	}
	if reflect.DeepEqual(before, a.Snapshot()) {
		t.Fatal("30 ticks did not change the arena")
	}

	a.Reset()

	if after := a.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Errorf("Reset() snapshot differs:\nbefore %+v\nafter  %+v", before, after)
	}
	if got := entityIDs(a); !reflect.DeepEqual(ids, got) {
		t.Errorf("Reset() ids = %v, want %v", got, ids)
	}
	if a.Robot().Sensor().Activated() || a.Robot().HitRechargeStation() {
		t.Error("Reset() left robot sensor or recharge flag set")
	}
}

func entityIDs(a *Arena) []entity.ID {
	ids := make([]entity.ID, 0, len(a.Entities()))
	for _, ent := range a.Entities() {
		ids = append(ids, ent.GetID())
	}
	return ids
}

func TestAdvanceTime_Win(t *testing.T) {
	cfg := emptyConfig()
	cfg.Robot.InitialHeading = 0
	cfg.HomeBase.X, cfg.HomeBase.Y = 600, 500
	cfg.Obstacles = []config.CircleConfig{
		{Radius: 30, X: 100, Y: 100, Color: "#ffffff"},
		{Radius: 30, X: 800, Y: 100, Color: "#ffffff"},
	}

	a := newArena(t, cfg)
	var won []*event.GameEvent
	a.EventBus.Subscribe(event.GameWon, func(e event.Event) {
		won = append(won, e.(*event.GameEvent))
	})

	// 100 apart, contact at <= 42: the 12th step of 5 brings it to 40.
	ticks := 0
	for !a.GameOver() && ticks < 50 {
		a.AdvanceTime()
		ticks++
	}

	if ticks != 12 {
		t.Errorf("game ended after %d ticks, want 12", ticks)
	}
	if a.Outcome() != event.OutcomeWon {
		t.Errorf("Outcome() = %v, want won", a.Outcome())
	}
	if len(won) != 1 || won[0].Tick != 12 {
		t.Errorf("game won events = %+v", won)
	}

	if a.Robot().GetPosition() != (physics.Vector2D{X: 500, Y: 500}) {
		t.Errorf("robot not reset: %v", a.Robot().GetPosition())
	}
	if a.Robot().BatteryLevel() != 100 || a.Robot().HeadingAngle() != 0 {
		t.Error("robot battery or heading not reset")
	}
	for i, o := range a.Obstacles() {
		if o.GetID() != entity.ID(i) {
			t.Errorf("obstacle %d id = %d after win", i, o.GetID())
		}
	}

	pos := a.Robot().GetPosition()
	a.AdvanceTime()
	if a.Robot().GetPosition() != pos || a.Tick() != 0 {
		t.Error("AdvanceTime() ran after the game was won")
	}
}

func TestAdvanceTime_WinTickContinuesOnResetArena(t *testing.T) {
	cfg := emptyConfig()
	// Reset puts the robot back against the left wall, so the collision
	// pass that follows the win must report that wall.
	cfg.Robot.X, cfg.Robot.Y = 20, 500
	cfg.Robot.InitialHeading = 0
	cfg.HomeBase.X, cfg.HomeBase.Y = 66, 500

	a := newArena(t, cfg)
	var walls int
	a.EventBus.Subscribe(event.Collision, func(e event.Event) {
		if e.(*event.CollisionEvent).CollidedWithWall {
			walls++
		}
	})

	a.AdvanceTime()

	if !a.GameOver() || a.Outcome() != event.OutcomeWon {
		t.Fatalf("GameOver/Outcome = %v/%v, want true/won", a.GameOver(), a.Outcome())
	}
	if a.Robot().GetPosition() != (physics.Vector2D{X: 20, Y: 500}) {
		t.Fatalf("robot not reset: %v", a.Robot().GetPosition())
	}

	s := a.Robot().Sensor()
	if !s.Activated() || !s.CollidedWithWall() {
		t.Error("collision pass skipped after the win: left wall not sensed")
	}
	if s.AngleOfContact() != 180 {
		t.Errorf("AngleOfContact() = %v, want 180", s.AngleOfContact())
	}
	if walls != 1 {
		t.Errorf("wall collision events = %d, want 1", walls)
	}
	if a.Robot().BatteryLevel() != 100 {
		t.Errorf("battery = %v, want 100", a.Robot().BatteryLevel())
	}
}

func TestAdvanceTime_WinTickRechargesOnResetArena(t *testing.T) {
	cfg := emptyConfig()
	cfg.Robot.InitialHeading = 0
	cfg.HomeBase.X, cfg.HomeBase.Y = 546, 500
	// The station touches the robot's reset position.
	cfg.RechargeStation.X, cfg.RechargeStation.Y = 500, 459

	a := newArena(t, cfg)
	var recharges int
	a.EventBus.Subscribe(event.Recharge, func(event.Event) { recharges++ })

	a.AdvanceTime()

	if a.Outcome() != event.OutcomeWon {
		t.Fatalf("Outcome() = %v, want won", a.Outcome())
	}
	if recharges != 1 {
		t.Errorf("recharge events = %d, want 1", recharges)
	}
	if !a.Robot().HitRechargeStation() {
		t.Error("reset robot should carry this tick's recharge flag")
	}
}

func TestAdvanceTime_Lose(t *testing.T) {
	a := newArena(t, emptyConfig())

	// The exact charge one tick of travel costs, computed the way the
	// battery does.
	start := a.Robot().GetPosition()
	next := start.Add(physics.FromHeading(270, 5*TimeStep))
	perTick := start.Distance(next) * entity.LinearScaleFactor * TimeStep * entity.DepletionMultiplier

	tests := []struct {
		name      string
		charge    float64
		wantTicks int
	}{
		{"exact", perTick, 1},
		{"one and a half ticks", 1.5 * perTick, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a.Reset()
			a.Robot().Battery().SetLevel(tt.charge)

			ticks := 0
			for !a.GameOver() && ticks < 10 {
				a.AdvanceTime()
				ticks++
			}

			if ticks != tt.wantTicks {
				t.Errorf("game ended after %d ticks, want %d", ticks, tt.wantTicks)
			}
			if a.Outcome() != event.OutcomeLost {
				t.Errorf("Outcome() = %v, want lost", a.Outcome())
			}
			if a.Robot().BatteryLevel() != 0 {
				t.Errorf("battery = %v, want exactly 0", a.Robot().BatteryLevel())
			}

			pos := a.Robot().GetPosition()
			a.AdvanceTime()
			if a.Robot().GetPosition() != pos {
				t.Error("AdvanceTime() moved the robot after the game was lost")
			}
		})
	}
}

func TestAdvanceTime_RechargeSuppressesPenaltyForOneTick(t *testing.T) {
	cfg := emptyConfig()
	cfg.Robot.InitialSpeed = 0
	cfg.RechargeStation = config.CircleConfig{Radius: 10, X: 530, Y: 500, Color: "#008080"}
	cfg.Obstacles = []config.CircleConfig{{Radius: 10, X: 470, Y: 500, Color: "#ffffff"}}

	a := newArena(t, cfg)
	var recharges int
	a.EventBus.Subscribe(event.Recharge, func(event.Event) { recharges++ })

	a.Robot().Battery().SetLevel(50)
	a.AdvanceTime()

	if recharges != 1 {
		t.Errorf("recharge events = %d, want 1", recharges)
	}
	if a.Robot().BatteryLevel() != 100 {
		t.Errorf("battery after recharge tick = %v, want 100", a.Robot().BatteryLevel())
	}
	if !a.Robot().Sensor().Activated() {
		t.Error("robot touching two entities should register a collision")
	}

	// Off the station, still touching the obstacle.
	a.Robot().SetPosition(physics.Vector2D{X: 480, Y: 520})
	a.AdvanceTime()

	if a.Robot().BatteryLevel() != 90 {
		t.Errorf("battery after plain bump = %v, want 90", a.Robot().BatteryLevel())
	}
	if recharges != 1 {
		t.Errorf("recharge events = %d, want 1", recharges)
	}
}

func TestAdvanceTime_BounceOffObstacle(t *testing.T) {
	cfg := emptyConfig()
	cfg.Robot.InitialHeading = 0
	cfg.Obstacles = []config.CircleConfig{{Radius: 20, X: 545, Y: 500, Color: "#ffffff"}}

	a := newArena(t, cfg)
	var collisions []*event.CollisionEvent
	a.EventBus.Subscribe(event.Collision, func(e event.Event) {
		collisions = append(collisions, e.(*event.CollisionEvent))
	})

	a.AdvanceTime()
	if len(collisions) != 1 || collisions[0].GetSource() != a.Robot() {
		t.Fatalf("collision events = %+v", collisions)
	}
	if !almostEqual(collisions[0].AngleOfContact, 180) {
		t.Errorf("angle of contact = %v, want 180", collisions[0].AngleOfContact)
	}
	if a.Robot().HeadingAngle() != 0 {
		t.Errorf("heading changed in the collision tick: %v", a.Robot().HeadingAngle())
	}
	if !almostEqual(a.Robot().BatteryLevel(), 89.75) || a.Robot().Speed() != 4 {
		t.Errorf("battery/speed = %v/%v, want 89.75/4", a.Robot().BatteryLevel(), a.Robot().Speed())
	}

	a.AdvanceTime()
	if !almostEqual(a.Robot().HeadingAngle(), -180) {
		t.Errorf("heading after bounce = %v, want -180", a.Robot().HeadingAngle())
	}
	if x := a.Robot().GetPosition().X; !almostEqual(x, 501) {
		t.Errorf("x after bounce = %v, want 501", x)
	}
	if len(collisions) != 1 {
		t.Errorf("robot still colliding after moving away: %d events", len(collisions))
	}
}

func TestAdvanceTime_WallBounceKeepsChargeAndSpeed(t *testing.T) {
	cfg := emptyConfig()
	cfg.Robot.Y = 25 // touches the top wall after one step up

	a := newArena(t, cfg)
	a.AdvanceTime()

	s := a.Robot().Sensor()
	if !s.Activated() || !s.CollidedWithWall() {
		t.Fatal("robot should register the top wall")
	}
	if a.Robot().Speed() != 5 || !almostEqual(a.Robot().BatteryLevel(), 99.75) {
		t.Errorf("wall contact cost speed or charge: %v/%v", a.Robot().Speed(), a.Robot().BatteryLevel())
	}

	a.AdvanceTime()
	if !almostEqual(a.Robot().HeadingAngle(), -270) {
		t.Errorf("heading = %v, want -270", a.Robot().HeadingAngle())
	}
	if y := a.Robot().GetPosition().Y; !almostEqual(y, 25) {
		t.Errorf("y = %v, want 25 after heading back down", y)
	}
}

func TestSnapshot(t *testing.T) {
	a := newArena(t, config.DefaultConfig())
	s := a.Snapshot()

	if s.Width != 1024 || s.Height != 768 || s.Battery != 100 || s.MaxBattery != 100 {
		t.Errorf("snapshot header = %+v", s)
	}
	if len(s.Entities) != len(a.Entities()) {
		t.Fatalf("snapshot entities = %d", len(s.Entities))
	}

	robot := s.Entities[0]
	if robot.Kind != entity.KindRobot || !robot.Mobile || robot.Heading != 270 || robot.Speed != 5 {
		t.Errorf("robot state = %+v", robot)
	}
	station := s.Entities[2]
	if station.Mobile || station.Color != (a.RechargeStation().GetColor()) {
		t.Errorf("station state = %+v", station)
	}

	s.Entities[0].Position = physics.Vector2D{}
	if a.Robot().GetPosition() == (physics.Vector2D{}) {
		t.Error("mutating a snapshot changed the arena")
	}
}

type countingRenderer struct {
	robots, homes, stations, obstacles, clears, presents int
}

func (c *countingRenderer) RenderRobot(*entity.Robot)                     { c.robots++ }
func (c *countingRenderer) RenderHomeBase(*entity.HomeBase)               { c.homes++ }
func (c *countingRenderer) RenderRechargeStation(*entity.RechargeStation) { c.stations++ }
func (c *countingRenderer) RenderObstacle(*entity.Obstacle)               { c.obstacles++ }
func (c *countingRenderer) Clear()                                        { c.clears++ }
func (c *countingRenderer) Present()                                      { c.presents++ }

func TestRender(t *testing.T) {
	a := newArena(t, config.DefaultConfig())
	r := &countingRenderer{}
	a.Render(r)

	want := countingRenderer{robots: 1, homes: 1, stations: 1, obstacles: 5, clears: 1, presents: 1}
	if *r != want {
		t.Errorf("render calls = %+v, want %+v", *r, want)
	}
}
