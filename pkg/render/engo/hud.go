// pkg/render/engo/hud.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Battery bar geometry in screen units
const (
	hudMargin    = 10
	hudBarWidth  = 200
	hudBarHeight = 12
)

var (
	batteryFull  = colorful.Color{R: 0, G: 0.8, B: 0}
	batteryEmpty = colorful.Color{R: 0.8, G: 0, B: 0}
)

// HUD draws the robot's battery as a bar in the top-left corner
type HUD struct {
	frame sprite
	bar   sprite

	level    float64
	maxLevel float64
}

// NewHUD creates the battery bar and registers it with sink
func NewHUD(sink spriteAdder) *HUD {
	h := &HUD{}

	h.frame = sprite{BasicEntity: ecs.NewBasic()}
	h.frame.RenderComponent = common.RenderComponent{
		Drawable: common.Rectangle{BorderWidth: 1, BorderColor: color.White},
		Color:    color.Transparent,
	}
	h.frame.SetZIndex(zHUD)
	h.frame.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: hudMargin, Y: hudMargin},
		Width:    hudBarWidth,
		Height:   hudBarHeight,
	}

	h.bar = sprite{BasicEntity: ecs.NewBasic()}
	h.bar.RenderComponent = common.RenderComponent{Drawable: common.Rectangle{}}
	h.bar.SetZIndex(zHUD)
	h.bar.SpaceComponent = common.SpaceComponent{
		Position: engo.Point{X: hudMargin, Y: hudMargin},
		Height:   hudBarHeight,
	}

	if sink != nil {
		sink.Add(&h.frame.BasicEntity, &h.frame.RenderComponent, &h.frame.SpaceComponent)
		sink.Add(&h.bar.BasicEntity, &h.bar.RenderComponent, &h.bar.SpaceComponent)
	}
	return h
}

// SetBattery resizes and recolours the bar for level out of maxLevel
func (h *HUD) SetBattery(level, maxLevel float64) {
	h.level, h.maxLevel = level, maxLevel
	width, c := batteryBar(level, maxLevel)
	h.bar.Width = width
	h.bar.Color = c
}

// Battery returns the last level shown
func (h *HUD) Battery() (level, maxLevel float64) {
	return h.level, h.maxLevel
}

// batteryBar returns the bar width and a colour fading from green when
// full to red when empty.
func batteryBar(level, maxLevel float64) (float32, color.RGBA) {
	frac := 0.0
	if maxLevel > 0 {
		frac = level / maxLevel
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	r, g, b := batteryEmpty.BlendRgb(batteryFull, frac).Clamped().RGB255()
	return float32(frac * hudBarWidth), color.RGBA{R: r, G: g, B: b, A: 255}
}
