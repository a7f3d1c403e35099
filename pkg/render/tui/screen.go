// Package tui draws the arena in a terminal with tcell and turns key
// presses into driver input.
package tui

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// Glyphs per entity kind
const (
	glyphRobot    = '●'
	glyphHomeBase = '◎'
	glyphStation  = '+'
	glyphObstacle = '█'
)

// ScreenRenderer draws entities as filled character discs. The bottom row
// holds a status line; the rest of the screen maps onto the arena.
type ScreenRenderer struct {
	screen tcell.Screen
	arenaW float64
	arenaH float64

	cols, rows     int
	scaleX, scaleY float64
	status         string
}

// NewScreenRenderer creates a renderer for an arenaW x arenaH arena
func NewScreenRenderer(screen tcell.Screen, arenaW, arenaH float64) *ScreenRenderer {
	r := &ScreenRenderer{
		screen: screen,
		arenaW: arenaW,
		arenaH: arenaH,
	}
	r.resize()
	return r
}

// resize recomputes the arena-to-cell scale from the current screen size
func (r *ScreenRenderer) resize() {
	cols, rows := r.screen.Size()
	if rows > 1 {
		rows--
	}
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	r.cols, r.rows = cols, rows
	r.scaleX = r.arenaW / float64(cols)
	r.scaleY = r.arenaH / float64(rows)
}

// Clear implements entity.Renderer
func (r *ScreenRenderer) Clear() {
	r.resize()
	r.screen.Clear()
	r.status = ""
}

// Present implements entity.Renderer
func (r *ScreenRenderer) Present() {
	style := tcell.StyleDefault.Reverse(true)
	x := 0
	for _, ch := range r.status {
		if x >= r.cols {
			break
		}
		r.screen.SetContent(x, r.rows, ch, nil, style)
		x++
	}
	r.screen.Show()
}

// Status returns the status line drawn by the last frame
func (r *ScreenRenderer) Status() string { return r.status }

// RenderRobot implements entity.Renderer
func (r *ScreenRenderer) RenderRobot(robot *entity.Robot) {
	r.fillCircle(robot.GetPosition(), robot.GetRadius(), glyphRobot, robot.GetColor())
	r.status = fmt.Sprintf(" battery %5.1f  heading %4.0f  speed %.0f ",
		robot.BatteryLevel(), robot.HeadingAngle(), robot.Speed())
}

// RenderHomeBase implements entity.Renderer
func (r *ScreenRenderer) RenderHomeBase(home *entity.HomeBase) {
	r.fillCircle(home.GetPosition(), home.GetRadius(), glyphHomeBase, home.GetColor())
}

// RenderRechargeStation implements entity.Renderer
func (r *ScreenRenderer) RenderRechargeStation(station *entity.RechargeStation) {
	r.fillCircle(station.GetPosition(), station.GetRadius(), glyphStation, station.GetColor())
}

// RenderObstacle implements entity.Renderer
func (r *ScreenRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	r.fillCircle(obstacle.GetPosition(), obstacle.GetRadius(), glyphObstacle, obstacle.GetColor())
}

// fillCircle sets every cell whose centre lies inside the circle. The
// centre cell is always set so small circles stay visible.
func (r *ScreenRenderer) fillCircle(center physics.Vector2D, radius float64, glyph rune, c color.RGBA) {
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))

	x0 := int((center.X - radius) / r.scaleX)
	x1 := int((center.X + radius) / r.scaleX)
	y0 := int((center.Y - radius) / r.scaleY)
	y1 := int((center.Y + radius) / r.scaleY)

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			cell := physics.Vector2D{
				X: (float64(cx) + 0.5) * r.scaleX,
				Y: (float64(cy) + 0.5) * r.scaleY,
			}
			if cell.Distance(center) <= radius {
				r.set(cx, cy, glyph, style)
			}
		}
	}
	r.set(int(center.X/r.scaleX), int(center.Y/r.scaleY), glyph, style)
}

// set writes one cell, ignoring cells off the arena area
func (r *ScreenRenderer) set(x, y int, glyph rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= r.cols || y >= r.rows {
		return
	}
	r.screen.SetContent(x, y, glyph, nil, style)
}
