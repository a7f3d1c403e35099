// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-robotarena/pkg/entity"
	"github.com/opd-ai/go-robotarena/pkg/logging"
)

// NullRenderer draws nothing and logs each call at debug level. It backs
// headless runs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

// NewNullRenderer creates a NullRenderer. A nil logger discards.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{logger: logger}
}

// Frames returns how many frames were presented.
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
}

// RenderRobot implements entity.Renderer.
func (d *NullRenderer) RenderRobot(robot *entity.Robot) {
	if robot == nil {
		return
	}
	d.logger.Debug(context.Background(), "render robot",
		"entity", robot.Name(),
		"x", robot.GetPosition().X,
		"y", robot.GetPosition().Y,
		"heading", robot.HeadingAngle(),
		"battery", robot.BatteryLevel(),
	)
}

// RenderHomeBase implements entity.Renderer.
func (d *NullRenderer) RenderHomeBase(home *entity.HomeBase) {
	if home == nil {
		return
	}
	d.logger.Debug(context.Background(), "render home base",
		"entity", home.Name(),
		"x", home.GetPosition().X,
		"y", home.GetPosition().Y,
	)
}

// RenderRechargeStation implements entity.Renderer.
func (d *NullRenderer) RenderRechargeStation(station *entity.RechargeStation) {}

// RenderObstacle implements entity.Renderer.
func (d *NullRenderer) RenderObstacle(obstacle *entity.Obstacle) {}
