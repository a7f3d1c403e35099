package entity

import (
	"github.com/opd-ai/go-robotarena/pkg/event"
	"github.com/opd-ai/go-robotarena/pkg/physics"
)

const (
	// LinearScaleFactor is the charge cost per unit of distance.
	LinearScaleFactor = 0.01
	// DepletionMultiplier scales LinearScaleFactor per tick.
	DepletionMultiplier = 5
	// BumpPenalty is the flat charge lost per non-wall collision.
	BumpPenalty = 10
)

// Battery is the robot's charge store.
type Battery struct {
	charge    float64
	maxCharge float64
}

// NewBattery returns a fully charged battery.
func NewBattery(maxCharge float64) *Battery {
	return &Battery{charge: maxCharge, maxCharge: maxCharge}
}

// Level returns the current charge.
func (b *Battery) Level() float64 {
	return b.charge
}

// MaxCharge returns the configured capacity.
func (b *Battery) MaxCharge() float64 {
	return b.maxCharge
}

// SetLevel overrides the current charge, clamped to [0, max].
func (b *Battery) SetLevel(level float64) {
	b.charge = clamp(level, 0, b.maxCharge)
}

// Deplete charges for the move from oldPos to newPos over dt and returns the
// remaining level. The level never drops below zero.
func (b *Battery) Deplete(oldPos, newPos physics.Vector2D, dt float64) float64 {
	dist := oldPos.Distance(newPos)
	b.charge -= dist * LinearScaleFactor * dt * DepletionMultiplier
	if b.charge < 0 {
		b.charge = 0
	}
	return b.charge
}

// Accept applies the flat bump penalty. Unlike Deplete it does not floor
// the level; the next Deplete does. Whether a collision should cost charge
// is decided by the robot.
func (b *Battery) Accept(_ *event.CollisionEvent) {
	b.charge -= BumpPenalty
}

// Recharge fills the battery.
func (b *Battery) Recharge() {
	b.charge = b.maxCharge
}

// Reset fills the battery.
func (b *Battery) Reset() {
	b.charge = b.maxCharge
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
