package collider

import (
	"math"

	"github.com/akmonengine/stride/actor"
)

// Axis selects the horizontal axis a ramp rises along
type Axis int

const (
	AxisX Axis = iota
	AxisZ
)

const (
	DefaultRampStepHeight = 0.3
	DefaultRampMaxClimb   = 1.5
)

// Ramp is a planar slope filling its footprint: the walkable surface rises
// linearly from Footprint.Min.Y to Footprint.Max.Y along Axis.
type Ramp struct {
	Footprint actor.AABB
	Axis      Axis
	// Descending makes the surface rise toward the Min side of Axis instead
	// of the Max side
	Descending bool
	// StepHeight is how far the surface at the ramp edge may stand above an
	// actor walking in from outside the footprint
	StepHeight float64
	// MaxClimb is how far the surface may stand above an actor already over
	// the footprint before the ramp acts as a wall
	MaxClimb float64
}

var _ Slope = (*Ramp)(nil)

// NewRamp creates a ramp with the default step and climb limits
func NewRamp(footprint actor.AABB, axis Axis, descending bool) *Ramp {
	return &Ramp{
		Footprint:  footprint,
		Axis:       axis,
		Descending: descending,
		StepHeight: DefaultRampStepHeight,
		MaxClimb:   DefaultRampMaxClimb,
	}
}

func (r *Ramp) Bounds() actor.AABB {
	return r.Footprint
}

func (r *Ramp) axisIndex() int {
	if r.Axis == AxisZ {
		return 2
	}
	return 0
}

func (r *Ramp) stepHeight() float64 {
	if r.StepHeight > 0 {
		return r.StepHeight
	}
	return DefaultRampStepHeight
}

func (r *Ramp) maxClimb() float64 {
	if r.MaxClimb > 0 {
		return r.MaxClimb
	}
	return DefaultRampMaxClimb
}

// HeightAt returns the surface height at (x, z), false outside the footprint
func (r *Ramp) HeightAt(x, z float64) (float64, bool) {
	f := r.Footprint
	if x < f.Min.X() || x > f.Max.X() || z < f.Min.Z() || z > f.Max.Z() {
		return 0, false
	}

	i := r.axisIndex()
	coord := x
	if i == 2 {
		coord = z
	}

	t := 1.0
	if span := f.Max[i] - f.Min[i]; span > 0 {
		t = (coord - f.Min[i]) / span
	}
	if r.Descending {
		t = 1 - t
	}

	return f.Min.Y() + t*(f.Max.Y()-f.Min.Y()), true
}

func (r *Ramp) IntersectsBox(box actor.AABB) bool {
	return r.Footprint.Overlaps(box)
}

// ShouldBlockHorizontalMovement tests a box whose center would be at (x, z).
// Over the footprint the ramp only blocks when its surface is more than
// MaxClimb above the box bottom; from outside, the surface at the nearest
// edge point must be within StepHeight.
func (r *Ramp) ShouldBlockHorizontalMovement(box actor.AABB, x, z float64) bool {
	if !r.Footprint.Intersects(box, Epsilon) {
		return false
	}

	bottom := box.Min.Y()
	if h, ok := r.HeightAt(x, z); ok {
		return h-bottom > r.maxClimb()
	}

	f := r.Footprint
	edgeX := math.Min(math.Max(x, f.Min.X()), f.Max.X())
	edgeZ := math.Min(math.Max(z, f.Min.Z()), f.Max.Z())
	h, _ := r.HeightAt(edgeX, edgeZ)

	return h-bottom > r.stepHeight()
}

func (r *Ramp) BlocksHorizontal(p Probe) bool {
	if p.Box.VerticalOverlap(r.Footprint) <= p.MinVerticalOverlap {
		return false
	}

	return r.ShouldBlockHorizontalMovement(p.Box, p.Center.X(), p.Center.Z())
}

// Ground offers the surface under the probe center when the actor bottom is
// within SlopeGroundDistance of it. The approach height follows the slope
// (the lower of the surface under the previous and the new center) and
// accepts actors stepping in from up to StepHeight below.
func (r *Ramp) Ground(p Probe) (Surface, bool) {
	h, ok := r.HeightAt(p.Center.X(), p.Center.Z())
	if !ok {
		return Surface{}, false
	}
	if math.Abs(p.Box.Min.Y()-h) >= p.SlopeGroundDistance {
		return Surface{}, false
	}

	approach := h
	prev := p.Previous.Center()
	if hp, ok := r.HeightAt(prev.X(), prev.Z()); ok && hp < approach {
		approach = hp
	}

	return Surface{
		Top:       h,
		Underside: r.Footprint.Min.Y(),
		Approach:  approach - r.stepHeight(),
	}, true
}
