package entity

// Renderer draws arena entities. Implementations only read entity state.
type Renderer interface {
	RenderRobot(robot *Robot)
	RenderHomeBase(home *HomeBase)
	RenderRechargeStation(station *RechargeStation)
	RenderObstacle(obstacle *Obstacle)
	Clear()
	Present()
}
