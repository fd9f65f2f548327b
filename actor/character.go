package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// blockedEpsilon is how much of a requested move must be removed before an axis counts as blocked
const blockedEpsilon = 1e-9

// Character is a kinematic actor (player or enemy) moved by the resolver.
// It owns its position and velocity; the resolver only returns offsets.
type Character struct {
	Id any

	// Position is the center of the character's box
	Position    mgl64.Vec3
	HalfExtents mgl64.Vec3
	Velocity    mgl64.Vec3 // m/s

	OnGround bool
	OnSlope  bool

	previousBottom float64
}

// NewCharacter creates a character resting its box center at position
func NewCharacter(position, halfExtents mgl64.Vec3) *Character {
	return &Character{
		Position:       position,
		HalfExtents:    halfExtents,
		previousBottom: position.Y() - halfExtents.Y(),
	}
}

// AABB returns the character's current box
func (c *Character) AABB() AABB {
	return NewAABBFromCenter(c.Position, c.HalfExtents)
}

func (c *Character) Bottom() float64 {
	return c.Position.Y() - c.HalfExtents.Y()
}

// PreviousBottom is the bottom recorded by the last Integrate call, before any movement
func (c *Character) PreviousBottom() float64 {
	return c.previousBottom
}

// Integrate applies gravity to the velocity and returns the displacement
// the character wants to travel during dt.
func (c *Character) Integrate(dt float64, gravity mgl64.Vec3) mgl64.Vec3 {
	c.previousBottom = c.Bottom()
	c.Velocity = c.Velocity.Add(gravity.Mul(dt))

	return c.Velocity.Mul(dt)
}

// Apply commits a resolved offset. Velocity is cancelled on every axis
// where the resolver shortened the requested displacement against the
// direction of travel, and downward velocity is dropped while grounded.
func (c *Character) Apply(displacement, offset mgl64.Vec3, onGround, onSlope bool) {
	c.Position = c.Position.Add(offset)

	for i := 0; i < 3; i++ {
		if math.Abs(offset[i]-displacement[i]) <= blockedEpsilon {
			continue
		}
		if displacement[i] > 0 && offset[i] < displacement[i] && c.Velocity[i] > 0 {
			c.Velocity[i] = 0
		} else if displacement[i] < 0 && offset[i] > displacement[i] && c.Velocity[i] < 0 {
			c.Velocity[i] = 0
		}
	}

	if onGround && c.Velocity.Y() < 0 {
		c.Velocity[1] = 0
	}

	c.OnGround = onGround
	c.OnSlope = onSlope
}
