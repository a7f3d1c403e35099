package arena

import (
	"image/color"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// Robot returns the player robot
func (a *Arena) Robot() *entity.Robot { return a.robot }

// HomeBase returns the home base
func (a *Arena) HomeBase() *entity.HomeBase { return a.homeBase }

// RechargeStation returns the recharge station
func (a *Arena) RechargeStation() *entity.RechargeStation { return a.rechargeStation }

// Obstacles returns the obstacles in construction order
func (a *Arena) Obstacles() []*entity.Obstacle { return a.obstacles }

// Entities returns every entity in list order
func (a *Arena) Entities() []entity.Entity { return a.entities }

// MobileEntities returns the robot and the home base
func (a *Arena) MobileEntities() []entity.Mobile { return a.mobileEntities }

// GameOver reports whether the round has been won or lost
func (a *Arena) GameOver() bool { return a.gameOver }

// Outcome reports how the round ended, if it has
func (a *Arena) Outcome() event.Outcome { return a.outcome }

// Tick returns the number of ticks run since construction or Reset
func (a *Arena) Tick() uint64 { return a.currentTick }

// Width returns the arena width
func (a *Arena) Width() float64 { return a.width }

// Height returns the arena height
func (a *Arena) Height() float64 { return a.height }

// EntityState is a read-only copy of one entity for viewers
type EntityState struct {
	Name     string
	Kind     entity.Kind
	Position physics.Vector2D
	Radius   float64
	Color    color.RGBA
	Mobile   bool
	Heading  float64
	Speed    float64
}

// Snapshot is a read-only copy of the arena between ticks
type Snapshot struct {
	Tick       uint64
	Width      float64
	Height     float64
	GameOver   bool
	Outcome    event.Outcome
	Battery    float64
	MaxBattery float64
	Entities   []EntityState
}

// Snapshot copies the state a renderer needs
func (a *Arena) Snapshot() Snapshot {
	s := Snapshot{
		Tick:       a.currentTick,
		Width:      a.width,
		Height:     a.height,
		GameOver:   a.gameOver,
		Outcome:    a.outcome,
		Battery:    a.robot.BatteryLevel(),
		MaxBattery: a.robot.Battery().MaxCharge(),
		Entities:   make([]EntityState, 0, len(a.entities)),
	}
	for _, ent := range a.entities {
		es := EntityState{
			Name:     ent.Name(),
			Kind:     ent.GetKind(),
			Position: ent.GetPosition(),
			Radius:   ent.GetRadius(),
			Color:    ent.GetColor(),
			Mobile:   ent.IsMobile(),
		}
		if m, ok := ent.(entity.Mobile); ok {
			es.Heading = m.HeadingAngle()
			es.Speed = m.Speed()
		}
		s.Entities = append(s.Entities, es)
	}
	return s
}

// Render draws every entity between Clear and Present
func (a *Arena) Render(r entity.Renderer) {
	r.Clear()
	for _, ent := range a.entities {
		ent.Render(r)
	}
	r.Present()
}
