package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

// Cell symbols used by TerminalRenderer
const (
	SymbolRobot    = 'R'
	SymbolHomeBase = 'H'
	SymbolStation  = '+'
	SymbolObstacle = '#'
)

// TerminalRenderer draws the arena as ASCII art scaled to a fixed grid
type TerminalRenderer struct {
	out      io.Writer
	width    int
	height   int
	buffer   [][]rune
	scaleX   float64
	scaleY   float64
	status   string
	clearSeq bool
}

// NewTerminalRenderer creates a renderer mapping an arenaW x arenaH arena
// onto a cols x rows character grid written to out.
func NewTerminalRenderer(out io.Writer, cols, rows int, arenaW, arenaH float64) *TerminalRenderer {
	buffer := make([][]rune, rows)
	for i := range buffer {
		buffer[i] = make([]rune, cols)
	}

	return &TerminalRenderer{
		out:      out,
		width:    cols,
		height:   rows,
		buffer:   buffer,
		scaleX:   arenaW / float64(cols),
		scaleY:   arenaH / float64(rows),
		clearSeq: true,
	}
}

// SetClearScreen toggles the ANSI clear sequence written before each frame.
func (r *TerminalRenderer) SetClearScreen(on bool) {
	r.clearSeq = on
}

// worldToScreen converts arena coordinates to a grid cell
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	return int(pos.X / r.scaleX), int(pos.Y / r.scaleY)
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.status = ""
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	w := bufio.NewWriter(r.out)
	if r.clearSeq {
		fmt.Fprint(w, "\033[H\033[2J")
	}

	fmt.Fprintln(w, "+"+strings.Repeat("-", r.width)+"+")
	for y := range r.buffer {
		fmt.Fprintln(w, "|"+string(r.buffer[y])+"|")
	}
	fmt.Fprintln(w, "+"+strings.Repeat("-", r.width)+"+")
	if r.status != "" {
		fmt.Fprintln(w, r.status)
	}
	w.Flush()
}

// fillCircle marks every cell whose center falls inside the circle, and
// always the cell holding the circle's center.
func (r *TerminalRenderer) fillCircle(c physics.Circle, symbol rune) {
	cx, cy := r.worldToScreen(c.Center)
	rx := int(c.Radius/r.scaleX) + 1
	ry := int(c.Radius/r.scaleY) + 1

	for y := cy - ry; y <= cy+ry; y++ {
		for x := cx - rx; x <= cx+rx; x++ {
			if !r.inBounds(x, y) {
				continue
			}
			cell := physics.Vector2D{
				X: (float64(x) + 0.5) * r.scaleX,
				Y: (float64(y) + 0.5) * r.scaleY,
			}
			if cell.Distance(c.Center) <= c.Radius {
				r.buffer[y][x] = symbol
			}
		}
	}
	if r.inBounds(cx, cy) {
		r.buffer[cy][cx] = symbol
	}
}

func (r *TerminalRenderer) inBounds(x, y int) bool {
	return x >= 0 && x < r.width && y >= 0 && y < r.height
}

// RenderRobot implements entity.Renderer
func (r *TerminalRenderer) RenderRobot(robot *entity.Robot) {
	r.fillCircle(robot.Collider(), SymbolRobot)
	r.status = fmt.Sprintf("%s battery %.1f  heading %.0f  speed %.0f",
		robot.Name(), robot.BatteryLevel(), robot.HeadingAngle(), robot.Speed())
}

// RenderHomeBase implements entity.Renderer
func (r *TerminalRenderer) RenderHomeBase(home *entity.HomeBase) {
	r.fillCircle(home.Collider(), SymbolHomeBase)
}

// RenderRechargeStation implements entity.Renderer
func (r *TerminalRenderer) RenderRechargeStation(station *entity.RechargeStation) {
	r.fillCircle(station.Collider(), SymbolStation)
}

// RenderObstacle implements entity.Renderer
func (r *TerminalRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	r.fillCircle(obstacle.Collider(), SymbolObstacle)
}
