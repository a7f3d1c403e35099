// pkg/render/engo/scene.go
package engo

import (
	"image/color"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-robotarena/pkg/arena"
	"github.com/opd-ai/go-robotarena/pkg/driver"
	"github.com/opd-ai/go-robotarena/pkg/logging"
)

// ArenaScene shows one arena in an engo window
type ArenaScene struct {
	arena    *arena.Arena
	interval time.Duration
	logger   *logging.Logger

	driver   *driver.Driver
	renderer *EngoRenderer
}

// NewArenaScene creates a scene ticking a every interval
func NewArenaScene(a *arena.Arena, interval time.Duration, logger *logging.Logger) *ArenaScene {
	return &ArenaScene{
		arena:    a,
		interval: interval,
		logger:   logger,
	}
}

// Type returns the scene type
func (s *ArenaScene) Type() string { return "ArenaScene" }

// Preload has nothing to load; every sprite is a shape
func (s *ArenaScene) Preload() {}

// Setup builds the world: render system, input, and the tick driver
func (s *ArenaScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)

	common.SetBackground(color.Black)

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	s.renderer = NewEngoRenderer(renderSystem)
	s.driver = driver.New(s.arena, s.renderer, s.interval, s.logger)

	RegisterControls()
	world.AddSystem(&InputSystem{driver: s.driver})
	world.AddSystem(&StepSystem{driver: s.driver})

	s.driver.Draw()
}

// Driver returns the scene's driver, nil before Setup
func (s *ArenaScene) Driver() *driver.Driver { return s.driver }

// StepSystem advances the driver by each frame's elapsed time
type StepSystem struct {
	driver *driver.Driver
}

// Remove satisfies the ecs.System interface
func (s *StepSystem) Remove(ecs.BasicEntity) {}

// Update steps and redraws the arena, closing the window on quit
func (s *StepSystem) Update(dt float32) {
	s.driver.Step(frameDuration(dt))
	if s.driver.Quit() {
		engo.Exit()
		return
	}
	s.driver.Draw()
}

// frameDuration converts engo's frame time in seconds to a duration
func frameDuration(dt float32) time.Duration {
	return time.Duration(float64(dt) * float64(time.Second))
}

// Run opens a window sized to the arena and blocks until it closes
func Run(a *arena.Arena, interval time.Duration, logger *logging.Logger) {
	engo.Run(engo.RunOptions{
		Title:  "Robot Arena",
		Width:  int(a.Width()),
		Height: int(a.Height()),
	}, NewArenaScene(a, interval, logger))
}
