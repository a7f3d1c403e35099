// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// Z layers
const (
	zStatic = 0
	zMobile = 1
	zHUD    = 2
)

// spriteAdder is the part of common.RenderSystem the renderer needs
type spriteAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// sprite is one drawable arena entity
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent

	seen bool
}

// EngoRenderer mirrors arena entities into engo render components. The
// arena and the engo world share coordinates: both have +Y pointing down.
type EngoRenderer struct {
	sink    spriteAdder
	sprites map[string]*sprite
	hud     *HUD
	frames  int
}

// NewEngoRenderer creates a renderer that registers its sprites with sink
func NewEngoRenderer(sink spriteAdder) *EngoRenderer {
	return &EngoRenderer{
		sink:    sink,
		sprites: make(map[string]*sprite),
		hud:     NewHUD(sink),
	}
}

// Frames returns the number of presented frames
func (r *EngoRenderer) Frames() int { return r.frames }

// HUD returns the heads-up display
func (r *EngoRenderer) HUD() *HUD { return r.hud }

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	for _, s := range r.sprites {
		s.seen = false
	}
}

// Present implements entity.Renderer. Sprites not drawn since the last
// Clear are hidden.
func (r *EngoRenderer) Present() {
	for _, s := range r.sprites {
		s.Hidden = !s.seen
	}
	r.frames++
}

// RenderRobot implements entity.Renderer
func (r *EngoRenderer) RenderRobot(robot *entity.Robot) {
	r.place(robot.Name(), robot.GetPosition(), robot.GetRadius(), robot.GetColor(), zMobile)
	r.hud.SetBattery(robot.BatteryLevel(), robot.Battery().MaxCharge())
}

// RenderHomeBase implements entity.Renderer
func (r *EngoRenderer) RenderHomeBase(home *entity.HomeBase) {
	r.place(home.Name(), home.GetPosition(), home.GetRadius(), home.GetColor(), zMobile)
}

// RenderRechargeStation implements entity.Renderer
func (r *EngoRenderer) RenderRechargeStation(station *entity.RechargeStation) {
	r.place(station.Name(), station.GetPosition(), station.GetRadius(), station.GetColor(), zStatic)
}

// RenderObstacle implements entity.Renderer
func (r *EngoRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	r.place(obstacle.Name(), obstacle.GetPosition(), obstacle.GetRadius(), obstacle.GetColor(), zStatic)
}

// place moves the sprite for name so the circle is centred on pos,
// creating it on first sight.
func (r *EngoRenderer) place(name string, pos physics.Vector2D, radius float64, c color.RGBA, z float32) {
	s, ok := r.sprites[name]
	if !ok {
		s = &sprite{BasicEntity: ecs.NewBasic()}
		s.RenderComponent = common.RenderComponent{Drawable: common.Circle{}}
		s.SetZIndex(z)
		r.sprites[name] = s
		if r.sink != nil {
			r.sink.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
		}
	}

	s.Color = c
	s.SpaceComponent.Position = worldToScreen(pos, radius)
	s.Width = float32(2 * radius)
	s.Height = float32(2 * radius)
	s.seen = true
}

// worldToScreen returns the top-left corner of a circle's bounding box
func worldToScreen(center physics.Vector2D, radius float64) engo.Point {
	return engo.Point{
		X: float32(center.X - radius),
		Y: float32(center.Y - radius),
	}
}
